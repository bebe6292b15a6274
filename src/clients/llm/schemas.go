package llm

import (
	"google.golang.org/genai"

	"tracker/src/models"
)

// Extraction is the candidate transaction returned by the model. Fields the
// model left out are nil (or absent, for Price).
type Extraction struct {
	Date        *string              `json:"date,omitempty"`
	Type        *string              `json:"type,omitempty"`
	Category    *string              `json:"category,omitempty"`
	Description *string              `json:"description,omitempty"`
	Price       models.OptionalFloat `json:"price"`
}

var extractionSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"date": {
			Type:        genai.TypeString,
			Description: "Date of the transaction, YYYY-MM-DD",
		},
		"type": {
			Type: genai.TypeString,
			Enum: []string{"income", "expense"},
		},
		"category": {
			Type:        genai.TypeString,
			Description: "Short lower-case category such as food, transport, salary",
		},
		"description": {
			Type: genai.TypeString,
		},
		"price": {
			Type:        genai.TypeNumber,
			Description: "Amount of money, always positive",
		},
	},
	Required: []string{"type", "category", "description", "price"},
}
