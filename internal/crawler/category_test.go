package crawler

import (
	"testing"

	"kenyadeals/dealworker/config"

	"github.com/stretchr/testify/assert"
)

func TestClassifier(t *testing.T) {
	classifier := testClassifier()

	testCases := []struct {
		name     string
		expected Category
	}{
		{"Tecno Spark 10 Pro", CategoryPhone},
		{"Samsung Galaxy A14", CategoryPhone},
		{"XIAOMI Redmi 12C", CategoryPhone},
		{"Itel A60s Smartphone", CategoryPhone},
		{"HP EliteBook 840 G5", CategoryLaptop},
		{"Lenovo ThinkPad X1 Carbon", CategoryLaptop},
		{"Dell Latitude 7490 Notebook", CategoryLaptop},
		{"Apple MacBook Air M1", CategoryLaptop},

		// No keyword match
		{"Sony WH-1000XM4 Headphones", ""},
		{"Ramtons Microwave Oven", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, classifier.Classify(tc.name), "name %q", tc.name)
	}
}

func TestClassifierPhonePrecedence(t *testing.T) {
	classifier := testClassifier()

	// A name matching both sets classifies as phone: the phone set is
	// tested first
	assert.Equal(t, CategoryPhone, classifier.Classify("Lenovo Phone Holder"))
	assert.Equal(t, CategoryPhone, classifier.Classify("Samsung laptop sleeve"))
}

func TestClassifierIdempotent(t *testing.T) {
	classifier := testClassifier()

	name := "Infinix Hot 30"
	first := classifier.Classify(name)
	assert.Equal(t, first, classifier.Classify(name))
}

func TestClassifierCaseInsensitive(t *testing.T) {
	classifier := NewClassifier(config.Keywords{
		Phone:  []string{"TECNO"},
		Laptop: []string{"ThinkPad"},
	})

	assert.Equal(t, CategoryPhone, classifier.Classify("tecno spark"))
	assert.Equal(t, CategoryLaptop, classifier.Classify("LENOVO THINKPAD"))
}
