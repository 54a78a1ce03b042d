package memory

import "mcq-practice-service/internal/domain"

// SampleQuestions seeds the in-memory question store when neither a database
// nor an upstream API is configured.
func SampleQuestions() map[string][]domain.Question {
	return map[string][]domain.Question{
		"nepal": {
			{Text: "What is the capital of Nepal?", Options: []string{"Pokhara", "Kathmandu", "Lalitpur", "Biratnagar"}, CorrectAnswer: "Kathmandu"},
			{Text: "Which is the highest peak in the world?", Options: []string{"K2", "Kangchenjunga", "Mount Everest", "Lhotse"}, CorrectAnswer: "Mount Everest"},
		},
		"physiology": {
			{Text: "Normal resting heart rate in adults is:", Options: []string{"40-50 bpm", "60-100 bpm", "110-130 bpm", "140-160 bpm"}, CorrectAnswer: "60-100 bpm"},
			{Text: "Which organ produces insulin?", Options: []string{"Liver", "Kidney", "Pancreas", "Spleen"}, CorrectAnswer: "Pancreas"},
		},
		"biochemistry": {
			{Text: "The end product of glycolysis under aerobic conditions is:", Options: []string{"Lactate", "Pyruvate", "Acetyl-CoA", "Glucose"}, CorrectAnswer: "Pyruvate"},
		},
		"pathology": {
			{Text: "Programmed cell death is called:", Options: []string{"Necrosis", "Apoptosis", "Hyperplasia", "Metaplasia"}, CorrectAnswer: "Apoptosis"},
		},
		"pharmacology": {
			{Text: "Paracetamol overdose primarily damages the:", Options: []string{"Heart", "Liver", "Lungs", "Brain"}, CorrectAnswer: "Liver"},
		},
		"math": {
			{Text: "What is 7 x 8?", Options: []string{"54", "56", "58", "64"}, CorrectAnswer: "56"},
			{Text: "The derivative of x^2 is:", Options: []string{"x", "2x", "x^3/3", "2"}, CorrectAnswer: "2x"},
		},
	}
}
