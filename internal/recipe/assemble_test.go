package recipe

import "testing"

func TestAssembleJoinsFields(t *testing.T) {
	s := Structured{
		Ingredients: []string{"potatoes (1 kg)", "salt"},
		Steps:       []string{"peel", "boil"},
		Utensils:    []string{"pot", "peeler"},
		CookTime:    "30 min",
		PrepTime:    Unknown,
	}

	n := Assemble(s)
	if n.IngredientsText != "potatoes (1 kg)\nsalt" {
		t.Fatalf("unexpected ingredients text: %q", n.IngredientsText)
	}
	if n.StepsText != "- peel\n- boil" {
		t.Fatalf("unexpected steps text: %q", n.StepsText)
	}
	if n.UtensilsText != "pot, peeler" {
		t.Fatalf("unexpected utensils text: %q", n.UtensilsText)
	}
	if n.CookTime != "30 min" || n.PrepTime != Unknown {
		t.Fatalf("unexpected timings: %q / %q", n.CookTime, n.PrepTime)
	}
}

func TestAssembleStepOrderPreserved(t *testing.T) {
	n := Assemble(Structured{Steps: []string{"a", "b"}})
	if n.StepsText != "- a\n- b" {
		t.Fatalf("expected ordered bullets, got %q", n.StepsText)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	s := Structured{
		Ingredients: []string{"flour (200 g)"},
		Steps:       []string{"mix", "bake"},
		Utensils:    []string{"bowl"},
		CookTime:    "20 min",
		PrepTime:    "10 min",
	}
	first := Assemble(s)
	second := Assemble(s)
	if first != second {
		t.Fatalf("expected identical output, got %+v vs %+v", first, second)
	}
}

func TestAssembleEmptyRecipe(t *testing.T) {
	n := Assemble(NewStructured())
	if n.IngredientsText != "" || n.StepsText != "" || n.UtensilsText != "" {
		t.Fatalf("expected empty text fields, got %+v", n)
	}
	if n.CookTime != Unknown || n.PrepTime != Unknown {
		t.Fatalf("expected unknown timings, got %+v", n)
	}
}

func TestAssembleDefaultsBlankTimings(t *testing.T) {
	n := Assemble(Structured{CookTime: "  "})
	if n.CookTime != Unknown {
		t.Fatalf("expected blank cook time to default, got %q", n.CookTime)
	}
}
