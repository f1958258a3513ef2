package dataset

// QAPair is one generated training example.
type QAPair struct {
	Prompt     string `json:"prompt"`
	Completion string `json:"completion"`
}

// Result is the payload stored on a completed document-pipeline task.
type Result struct {
	TrainFile string `json:"train_file"`
	ValidFile string `json:"valid_file"`
	TestFile  string `json:"test_file"`
	QACount   int    `json:"qa_count"`
	FileCount int    `json:"file_count"`
}
