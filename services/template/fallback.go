package template

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

var (
	firstNames = []string{
		"John", "Jane", "Michael", "Sarah", "David", "Emily", "Christopher", "Jessica", "Matthew", "Ashley",
		"Daniel", "Lisa", "James", "Maria", "Robert", "Michelle", "William", "Jennifer", "Thomas", "Elizabeth",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
		"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	}
	domains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com"}
	cities  = []string{
		"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia", "San Antonio", "San Diego",
		"Dallas", "San Jose", "Austin", "Jacksonville", "Fort Worth", "Columbus", "San Francisco", "Charlotte",
		"Indianapolis", "Seattle", "Denver", "Washington",
	}
	streets = []string{
		"Main St", "First Ave", "Elm St", "Oak St", "Pine St", "Maple Ave", "Cedar St", "Park Ave",
		"Washington St", "Lake St",
	}
)

// fieldRule pairs a semantic category with its value generator. Rules
// are evaluated in declaration order, first match wins, so behavior is
// reproducible rather than dependent on map iteration order.
type fieldRule struct {
	key string
	gen func() any
}

var fieldRules = []fieldRule{
	{"name", func() any { return randFirstName() + " " + randLastName() }},
	{"email", randEmail},
	{"phone", randPhone},
	{"address", randAddress},
	{"city", func() any { return cities[rand.Intn(len(cities))] }},
	{"date", randDate},
	{"age", func() any { return 18 + rand.Intn(63) }},
	{"salary", func() any { return 30000 + rand.Intn(90001) }},
	{"integer", func() any { return 1 + rand.Intn(1000) }},
	{"number", func() any { return 1 + rand.Intn(1000) }},
	{"decimal", randDecimal},
}

// fallbackRows generates count rows without a model. Every row
// populates every field.
func fallbackRows(tpl *Template, count int) []Row {
	rows := make([]Row, 0, count)
	for i := 0; i < count; i++ {
		row := Row{}
		for _, field := range tpl.Fields {
			if tpl.IsStructured {
				row[field.Name] = structuredValue(field)
			} else {
				row[field.Name] = flatValue(field)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// structuredValue picks a value for a survey field: choice lists take
// precedence, then the rule list matched against name substring or
// exact type, then a generic placeholder.
func structuredValue(field Field) any {
	if len(field.Choices) > 0 {
		if strings.Contains(field.Type, "select_multiple") {
			return sampleChoices(field.Choices)
		}
		return field.Choices[rand.Intn(len(field.Choices))]
	}

	lowerName := strings.ToLower(field.Name)
	for _, rule := range fieldRules {
		if strings.Contains(lowerName, rule.key) || field.Type == rule.key {
			return rule.gen()
		}
	}

	return fmt.Sprintf("Sample %s %d", field.Name, 1+rand.Intn(1000))
}

// flatValue picks a value for a flat template column from its name and
// sample value.
func flatValue(field Field) any {
	lowerName := strings.ToLower(field.Name)

	if strings.Contains(lowerName, "name") || strings.Contains(lowerName, "nome") || strings.Contains(lowerName, "cognome") {
		switch {
		case strings.Contains(lowerName, "cognome"), strings.Contains(lowerName, "surname"), strings.Contains(lowerName, "lastname"):
			return randLastName()
		case strings.Contains(lowerName, "nome"), strings.Contains(lowerName, "firstname"), strings.Contains(lowerName, "given"):
			return randFirstName()
		default:
			return randFirstName() + " " + randLastName()
		}
	}

	if field.SampleValue != "" {
		if strings.Contains(field.SampleValue, ".") {
			if _, err := strconv.ParseFloat(field.SampleValue, 64); err == nil {
				return randDecimal()
			}
		} else if _, err := strconv.Atoi(field.SampleValue); err == nil {
			return 1 + rand.Intn(1000)
		}
	}

	for _, rule := range fieldRules {
		if rule.key == "integer" || rule.key == "number" || rule.key == "decimal" {
			continue
		}
		if strings.Contains(lowerName, rule.key) {
			return rule.gen()
		}
	}

	return fmt.Sprintf("Sample %s %d", field.Name, 1+rand.Intn(1000))
}

// sampleChoices picks 1-3 distinct values.
func sampleChoices(choices []string) []string {
	n := 1 + rand.Intn(min(3, len(choices)))
	picked := make([]string, 0, n)
	for _, i := range rand.Perm(len(choices))[:n] {
		picked = append(picked, choices[i])
	}
	return picked
}

func randFirstName() string { return firstNames[rand.Intn(len(firstNames))] }
func randLastName() string  { return lastNames[rand.Intn(len(lastNames))] }

func randEmail() any {
	return fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(randFirstName()),
		strings.ToLower(randLastName()),
		1+rand.Intn(99),
		domains[rand.Intn(len(domains))],
	)
}

func randPhone() any {
	return fmt.Sprintf("+1-%d-%d-%d", 100+rand.Intn(900), 100+rand.Intn(900), 1000+rand.Intn(9000))
}

func randAddress() any {
	return fmt.Sprintf("%d %s", 100+rand.Intn(9900), streets[rand.Intn(len(streets))])
}

func randDate() any {
	return fmt.Sprintf("2024-%02d-%02d", 1+rand.Intn(12), 1+rand.Intn(28))
}

func randDecimal() any {
	return float64(int(rand.Float64()*99900+100)) / 100
}
