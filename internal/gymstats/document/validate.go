package document

// Validate checks the template invariants every reader relies on: day numbers
// 1 to 3 used once, exercise ids unique across all days and weightless abs.
func (d *Document) Validate() error {
	days := make(map[int]bool, len(d.GymDaysTemplate))
	exercises := make(map[string]bool)
	for _, day := range d.GymDaysTemplate {
		if day.DayNumber < 1 || day.DayNumber > 3 {
			return Invalidf("Invalid gym day number %d", day.DayNumber)
		}
		if days[day.DayNumber] {
			return Invalidf("Gym day %d is defined more than once", day.DayNumber)
		}
		days[day.DayNumber] = true

		for _, ex := range day.Exercises {
			if ex.ExerciseID == "" {
				return Invalidf("Exercise %q on day %d has no id", ex.ExerciseName, day.DayNumber)
			}
			if exercises[ex.ExerciseID] {
				return Invalidf("Exercise id %q is used more than once", ex.ExerciseID)
			}
			exercises[ex.ExerciseID] = true

			if ex.IsAbs() && (ex.StartWeight != nil || ex.CurrentWeight != nil) {
				return Invalidf("Abs exercise %q cannot have weights", ex.ExerciseID)
			}
		}
	}
	return nil
}
