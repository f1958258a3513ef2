package dataset

import (
	"context"
	"os"
	"path/filepath"

	"datasetforge/pkg/config"
	"datasetforge/pkg/errutil"
	"datasetforge/services/extract"

	"go.uber.org/zap"
)

// Service runs the document pipeline: extraction, quota planning,
// generation, and split writing. Output files are namespaced by task
// ID so concurrent jobs never overwrite each other's splits.
type Service struct {
	extractor *extract.Service
	generator *Generator
	outputDir string
}

func NewService(extractor *extract.Service, generator *Generator, cfg *config.Config) *Service {
	return &Service{
		extractor: extractor,
		generator: generator,
		outputDir: cfg.Storage.OutputDir,
	}
}

// Generate builds train/valid/test JSONL files from the given input
// files and returns their locations plus the total pair count.
func (s *Service) Generate(ctx context.Context, taskID string, paths []string) (*Result, error) {
	text, err := s.extractor.ExtractFiles(paths)
	if err != nil {
		return nil, err
	}

	plan := Plan(len(text))
	zap.L().Info("planned dataset quota",
		zap.String("task_id", taskID),
		zap.Int("text_length", len(text)),
		zap.Int("train", plan.Train),
		zap.Int("valid", plan.Valid),
		zap.Int("test", plan.Test),
	)

	train := s.generator.Generate(ctx, text, plan.Train)
	valid := s.generator.Generate(ctx, text, plan.Valid)
	test := s.generator.Generate(ctx, text, plan.Test)

	dir := filepath.Join(s.outputDir, taskID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errutil.Internal("error creating output directory", errutil.WithErr(err))
	}

	result := &Result{
		TrainFile: filepath.Join(dir, "train.jsonl"),
		ValidFile: filepath.Join(dir, "valid.jsonl"),
		TestFile:  filepath.Join(dir, "test.jsonl"),
		QACount:   plan.Total,
		FileCount: len(paths),
	}

	if err := writeJSONL(result.TrainFile, train); err != nil {
		return nil, err
	}
	if err := writeJSONL(result.ValidFile, valid); err != nil {
		return nil, err
	}
	if err := writeJSONL(result.TestFile, test); err != nil {
		return nil, err
	}

	return result, nil
}
