package models

// MuscleGroup is a predefined muscle group targeted by an exercise.
type MuscleGroup string

// MuscleGroups lists every selectable muscle group.
var MuscleGroups = []MuscleGroup{
	"Chest",
	"Back",
	"Shoulders",
	"Biceps",
	"Triceps",
	"Legs",
	"Glutes",
	"Core",
	"Forearms",
	"Cardio",
}

// Valid reports whether m is one of the predefined muscle groups.
func (m MuscleGroup) Valid() bool {
	for _, g := range MuscleGroups {
		if m == g {
			return true
		}
	}
	return false
}

// GymMachine is a predefined machine or piece of equipment.
type GymMachine string

// GymMachines lists every selectable machine.
var GymMachines = []GymMachine{
	"Barbell",
	"Dumbbell",
	"Cable Machine",
	"Smith Machine",
	"Leg Press",
	"Bench Press",
	"Squat Rack",
	"Pull-up Bar",
	"Dip Station",
	"Treadmill",
	"Rowing Machine",
	"Elliptical",
	"Bodyweight",
	"Resistance Bands",
	"Kettlebell",
}

// Valid reports whether g is one of the predefined machines.
func (g GymMachine) Valid() bool {
	for _, m := range GymMachines {
		if g == m {
			return true
		}
	}
	return false
}
