package store

import (
	"time"

	"github.com/JonMunkholm/suppliers/internal/core"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedSuppliers returns the demo directory used by the memory store.
func SeedSuppliers() []core.Supplier {
	return []core.Supplier{
		{
			ID:          "1",
			Name:        "EcoGreen Materials",
			Email:       "partners@ecogreen.example",
			Phone:       "+1 (555) 123-4567",
			Website:     "https://ecogreen-materials.example",
			Description: "Sustainable packaging and eco-friendly raw materials supplier with global reach.",
			City:        "Portland, OR",
			Categories:  []string{"Packaging", "Raw Materials", "Sustainable Products"},
			Slug:        "ecogreen-materials",
			CreatedAt:   day("2024-01-15"),
			UpdatedAt:   day("2024-01-15"),
		},
		{
			ID:          "2",
			Name:        "TechParts International",
			Email:       "contact@techparts.example",
			Phone:       "+1 (555) 987-6543",
			Website:     "https://techparts.example",
			Description: "Premium electronics components and precision manufacturing parts.",
			City:        "Munich, Germany",
			Categories:  []string{"Electronics", "Manufacturing"},
			Slug:        "techparts-international",
			CreatedAt:   day("2024-01-20"),
			UpdatedAt:   day("2024-01-20"),
		},
		{
			ID:          "3",
			Name:        "GlobalTextiles Co.",
			Email:       "sales@globaltextiles.example",
			Phone:       "+1 (555) 456-7890",
			Website:     "https://globaltextiles.example",
			Description: "High-quality textiles and fabrics from sustainable sources worldwide.",
			City:        "Mumbai, India",
			Categories:  []string{"Textiles", "Fabrics"},
			Slug:        "globaltextiles-co",
			CreatedAt:   day("2024-02-01"),
			UpdatedAt:   day("2024-02-01"),
		},
		{
			ID:          "4",
			Name:        "Precision Metals",
			Email:       "info@precisionmetals.example",
			Phone:       "+1 (555) 321-0987",
			Website:     "https://precisionmetals.example",
			Description: "High-grade metal components and custom fabrication services.",
			City:        "Detroit, MI",
			Categories:  []string{"Manufacturing", "Raw Materials"},
			Slug:        "precision-metals",
			CreatedAt:   day("2024-02-10"),
			UpdatedAt:   day("2024-02-10"),
		},
		{
			ID:          "5",
			Name:        "Organic Harvest",
			Email:       "orders@organicharvest.example",
			Phone:       "+1 (555) 654-3210",
			Website:     "https://organicharvest.example",
			Description: "Certified organic food ingredients from sustainable farms.",
			City:        "Sacramento, CA",
			Categories:  []string{"Food", "Organic", "Agriculture"},
			Slug:        "organic-harvest",
			CreatedAt:   day("2024-02-15"),
			UpdatedAt:   day("2024-02-15"),
		},
		{
			ID:          "6",
			Name:        "ChemTech Solutions",
			Email:       "support@chemtech.example",
			Phone:       "+1 (555) 789-0123",
			Website:     "https://chemtech.example",
			Description: "Specialized chemical compounds for industrial and laboratory applications.",
			City:        "Boston, MA",
			Categories:  []string{"Manufacturing", "Raw Materials"},
			Slug:        "chemtech-solutions",
			CreatedAt:   day("2024-02-20"),
			UpdatedAt:   day("2024-02-20"),
		},
	}
}
