package services

import (
	"math"
	"testing"

	"github.com/Amankrah/ecodish365/models"
)

func neutralContext() NutritionalContext {
	return NutritionalContext{
		SatietyIndex:        1.0,
		ProteinQualityScore: 1.0,
		ProcessingLevel:     MinimallyProcessed,
	}
}

func TestPointsForValue(t *testing.T) {
	scale := []float64{0, 50, 100, 150, 200, 250, 300, 400, 500, 600, 700}

	tests := []struct {
		value float64
		want  int
	}{
		{0, 0},
		{49, 1},
		{50, 1},
		{51, 2},
		{700, 10},
		{10000, 10},
	}
	for _, tt := range tests {
		if got := PointsForValue(tt.value, scale); got != tt.want {
			t.Errorf("PointsForValue(%v) = %d, want %d", tt.value, got, tt.want)
		}
	}
}

func TestPointsForValueDisabledScale(t *testing.T) {
	if got := PointsForValue(5, nil); got != 0 {
		t.Errorf("empty scale = %d, want 0", got)
	}
	disabled := []float64{math.Inf(1), math.Inf(1)}
	if got := PointsForValue(5, disabled); got != 0 {
		t.Errorf("disabled scale = %d, want 0", got)
	}
}

func TestThresholdsForNeutral(t *testing.T) {
	th := ThresholdsFor(models.CategoryFood, neutralContext())

	if th.EnergyDensity[1] != 50 {
		t.Errorf("energy[1] = %v, want 50", th.EnergyDensity[1])
	}
	if th.Protein[1] != 3 {
		t.Errorf("protein[1] = %v, want 3", th.Protein[1])
	}
	if th.Fiber[10] != 15 {
		t.Errorf("fiber[10] = %v, want 15", th.Fiber[10])
	}
}

func TestThresholdsForBeverageDisablesFiber(t *testing.T) {
	th := ThresholdsFor(models.CategoryBeverage, neutralContext())

	if !math.IsInf(th.Fiber[0], 1) {
		t.Errorf("beverage fiber[0] = %v, want +Inf", th.Fiber[0])
	}
	if got := PointsForValue(10, th.Fiber); got != 0 {
		t.Errorf("beverage fiber points = %d, want 0", got)
	}
}

func TestThresholdsForCheeseProtein(t *testing.T) {
	th := ThresholdsFor(models.CategoryCheese, neutralContext())

	if th.Protein[0] != 0 {
		t.Errorf("cheese protein[0] = %v, want 0", th.Protein[0])
	}
	if th.Protein[1] != 1 {
		t.Errorf("cheese protein[1] = %v, want 1", th.Protein[1])
	}
}

func TestThresholdsForOilsEnergy(t *testing.T) {
	th := ThresholdsFor(models.CategoryOilsAndSpreads, neutralContext())

	if th.EnergyDensity[0] != 50 {
		t.Errorf("oils energy[0] = %v, want 50", th.EnergyDensity[0])
	}
	if th.EnergyDensity[10] != 750 {
		t.Errorf("oils energy[10] = %v, want 750", th.EnergyDensity[10])
	}
}

func TestThresholdsForContextAdjustments(t *testing.T) {
	t.Run("satiety scales energy", func(t *testing.T) {
		ctx := neutralContext()
		ctx.SatietyIndex = 1.2
		th := ThresholdsFor(models.CategoryFood, ctx)
		if th.EnergyDensity[1] != 60 {
			t.Errorf("energy[1] = %v, want 60", th.EnergyDensity[1])
		}
	})

	t.Run("ultra processing tightens added sugar", func(t *testing.T) {
		ctx := neutralContext()
		ctx.ProcessingLevel = UltraProcessed
		th := ThresholdsFor(models.CategoryFood, ctx)
		if th.SugarAdded[2] != 1 {
			t.Errorf("added sugar[2] = %v, want 1", th.SugarAdded[2])
		}
		if th.SugarAdded[10] != 12 {
			t.Errorf("added sugar[10] = %v, want 12", th.SugarAdded[10])
		}
	})

	t.Run("liquid tightens energy and natural sugar", func(t *testing.T) {
		ctx := neutralContext()
		ctx.LiquidPercentage = 0.5
		th := ThresholdsFor(models.CategoryFood, ctx)
		if th.EnergyDensity[1] != 42 {
			t.Errorf("energy[1] = %v, want 42", th.EnergyDensity[1])
		}
		if th.SugarNatural[1] != 4 {
			t.Errorf("natural sugar[1] = %v, want 4", th.SugarNatural[1])
		}
	})

	t.Run("protein quality lowers protein tiers", func(t *testing.T) {
		ctx := neutralContext()
		ctx.ProteinQualityScore = 1.2
		th := ThresholdsFor(models.CategoryFood, ctx)
		if th.Protein[1] != 2 {
			t.Errorf("protein[1] = %v, want 2", th.Protein[1])
		}
	})
}

func TestThresholdsAreIndependentCopies(t *testing.T) {
	ctx := neutralContext()
	ctx.SatietyIndex = 1.4
	_ = ThresholdsFor(models.CategoryFood, ctx)

	th := ThresholdsFor(models.CategoryFood, neutralContext())
	if th.EnergyDensity[1] != 50 {
		t.Errorf("base scale mutated: energy[1] = %v, want 50", th.EnergyDensity[1])
	}
}
