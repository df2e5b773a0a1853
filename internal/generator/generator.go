// Package generator builds the synthetic course catalog.
package generator

import (
	"fmt"

	"github.com/verte-zerg/uelist/internal/model"
)

// Departments lists the fixed department cycle.
var Departments = []string{
	"Informatique",
	"Mathématiques",
	"Physique",
	"Chimie",
	"Biologie",
}

var prefixes = []string{
	"Introduction à",
	"Fondamentaux de",
	"Approfondissement en",
	"Projet de",
	"Séminaire de",
}

// levelSize is the number of consecutive records sharing a level.
const levelSize = 25

// maxEcts bounds the credit cycle 1..maxEcts.
const maxEcts = 6

// Generate returns count records computed from their zero-based index.
// The output only depends on count.
func Generate(count int) []model.Ue {
	if count <= 0 {
		return []model.Ue{}
	}
	out := make([]model.Ue, count)
	for i := 0; i < count; i++ {
		out[i] = At(i)
	}
	return out
}

// At returns the record generated for index i.
func At(i int) model.Ue {
	dept := Departments[i%len(Departments)]
	return model.Ue{
		ID:         i + 1,
		Code:       fmt.Sprintf("UE%05d", i+1),
		Title:      fmt.Sprintf("%s %s - Niveau %d", prefixes[i%len(prefixes)], dept, i/levelSize+1),
		Ects:       i%maxEcts + 1,
		Department: dept,
	}
}
