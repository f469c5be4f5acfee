package document

import (
	"time"
)

// DefaultKey is the store key the document lives under.
const DefaultKey = "my-gym-db"

var (
	seedPasscodeUpdatedAt = time.Date(2026, 2, 20, 10, 15, 0, 0, time.UTC)
	seedTemplateUpdatedAt = time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)
)

// Seed returns the default document written on first access to an empty store.
func Seed() *Document {
	return &Document{
		Passcode: &Passcode{
			Version:   1,
			Passcode:  "123654",
			UpdatedAt: seedPasscodeUpdatedAt,
		},
		GymDaysTemplate: seedTemplate(),
		GymSessions: []GymSession{
			{
				ID:   "gs_1",
				Date: "2026-02-19",
				GymDay: GymDayRef{
					DayNumber: 1,
					DayName:   "Lower + Posterior Chain",
				},
				DurationMinutes: 12,
				Exercises: []LoggedExercise{
					{
						ExerciseID:   "ex_1",
						ExerciseName: "Romanian Deadlift",
						Sets: []Set{
							{Weight: Float(40), Reps: 10},
							{Weight: Float(40), Reps: 9},
							{Weight: Float(40), Reps: 8},
						},
					},
				},
				CreatedAt: time.Date(2026, 2, 19, 20, 10, 0, 0, time.UTC),
			},
		},
		ProteinIntake: []ProteinEntry{
			{ID: "pi_1", Date: "2026-02-19", Grams: 10, CreatedAt: time.Date(2026, 2, 19, 20, 0, 0, 0, time.UTC)},
		},
		FootballSessions: []CardioSession{
			{ID: "fb_1", Date: "2026-02-17", DurationMinutes: 9, CreatedAt: time.Date(2026, 2, 17, 20, 5, 0, 0, time.UTC)},
		},
		SquashSessions: []CardioSession{
			{ID: "sq_1", Date: "2026-02-16", DurationMinutes: 45, CreatedAt: time.Date(2026, 2, 16, 21, 10, 0, 0, time.UTC)},
		},
	}
}

func seedTemplate() []GymDay {
	return []GymDay{
		{
			DayNumber: 1,
			DayName:   "Lower + Posterior Chain",
			Area:      "Legs/ Glutes/ Back Thickness",
			Exercises: []TemplateExercise{
				weightedExercise("ex_1", "Romanian Deadlift", 40, "3x8-10", CategoryCompound),
				weightedExercise("ex_2", "Seated Row", 32, "3x8-12", CategoryCompound),
				weightedExercise("ex_3", "Walking Lunges", 6, "2x10/leg", CategoryCompound),
				weightedExercise("ex_4", "Rear Deltoid Machine", 32, "2x12-15", CategoryAccessory),
				weightedExercise("ex_5", "Hammer Curls", 8, "3x10-12", CategoryAccessory),
				weightedExercise("ex_6", "Calf Raises", 45, "3x12-15", CategoryAccessory),
				bodyweightExercise("ex_7", "Hanging Leg Raises", "3x8-12"),
			},
		},
		{
			DayNumber: 2,
			DayName:   "Push Dominant",
			Area:      "Chest/ Shoulders/ Quads",
			Exercises: []TemplateExercise{
				weightedExercise("ex_8", "Dumbbell Bench Press", 14, "3x8-12", CategoryCompound),
				weightedExercise("ex_9", "Leg Press", 45, "3x8-12", CategoryCompound),
				weightedExercise("ex_10", "Dumbbell Shoulder Press", 12, "3x8-12", CategoryCompound),
				weightedExercise("ex_11", "Cable Chest Fly", 7.5, "2x12-15", CategoryAccessory),
				weightedExercise("ex_12", "Tricep Pushdown", 8, "3x10-12", CategoryAccessory),
				weightedExercise("ex_13", "Lateral Raises", 6, "2x12-15", CategoryAccessory),
				bodyweightExercise("ex_14", "Sit-Ups", "3x12-15"),
			},
		},
		{
			DayNumber: 3,
			DayName:   "Pull Dominant",
			Area:      "Backs/ Arms/ Upper Chest",
			Exercises: []TemplateExercise{
				weightedExercise("ex_15", "Lat Pulldown", 32, "3x8-12", CategoryCompound),
				weightedExercise("ex_16", "Incline Dumbbell Press", 10, "3x8-12", CategoryCompound),
				weightedExercise("ex_17", "Squats", 6, "3x10", CategoryCompound),
				weightedExercise("ex_18", "Barbell Curls", 15, "3x8-12", CategoryAccessory),
				weightedExercise("ex_19", "Tricep Overhead Cable", 5.25, "2x12", CategoryAccessory),
				weightedExercise("ex_20", "Shrugs", 12, "2x12", CategoryAccessory),
				bodyweightExercise("ex_21", "Plank", "3x45-60secs"),
			},
		},
	}
}

func weightedExercise(id, name string, weight float64, reps, category string) TemplateExercise {
	return TemplateExercise{
		ExerciseID:    id,
		ExerciseName:  name,
		StartWeight:   Float(weight),
		CurrentWeight: Float(weight),
		Category:      category,
		Reps:          reps,
		LastUpdated:   seedTemplateUpdatedAt,
	}
}

func bodyweightExercise(id, name, reps string) TemplateExercise {
	return TemplateExercise{
		ExerciseID:   id,
		ExerciseName: name,
		Category:     CategoryAbs,
		Reps:         reps,
		LastUpdated:  seedTemplateUpdatedAt,
	}
}
