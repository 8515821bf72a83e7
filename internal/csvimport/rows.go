package csvimport

// Row is one data row of either export format. The concrete type is
// LegacyRow or NativeRow; Process switches on it.
type Row interface {
	Number() int
	isRow()
}

// LegacyRow is a row of the legacy third-party export.
type LegacyRow struct {
	RowNumber     int
	Date          string // MM/DD/YYYY
	Title         string
	ScoreType     string // e.g. "Time", "Rounds + Reps", "Load"
	BestResultRaw string // e.g. "245", "10+5", "3:20"
	RxOrScaled    string
	Notes         string
}

// NativeRow is a row of this service's own export.
type NativeRow struct {
	RowNumber       int
	WorkoutName     string
	Date            string
	TimeSeconds     string
	Reps            string
	Load            string
	RoundsCompleted string
	PartialReps     string
	IsRx            string
	Notes           string
}

func (r LegacyRow) Number() int { return r.RowNumber }
func (r NativeRow) Number() int { return r.RowNumber }

func (LegacyRow) isRow() {}
func (NativeRow) isRow() {}

// ParseRows detects the schema from header and routes every record to that
// schema's row parser. Row numbers start at 1 for the first data row.
func ParseRows(header []string, records []Record) ([]Row, error) {
	schema, err := DetectSchema(header)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		if schema == SchemaLegacy {
			rows[i] = parseLegacyRow(i+1, rec)
		} else {
			rows[i] = parseNativeRow(i+1, rec)
		}
	}
	return rows, nil
}

func parseLegacyRow(n int, rec Record) LegacyRow {
	return LegacyRow{
		RowNumber:     n,
		Date:          rec[colDate],
		Title:         rec[colTitle],
		ScoreType:     rec[colScoreType],
		BestResultRaw: rec[colBestResultRaw],
		RxOrScaled:    rec[colRxOrScaled],
		Notes:         rec[colNotes],
	}
}

func parseNativeRow(n int, rec Record) NativeRow {
	return NativeRow{
		RowNumber:       n,
		WorkoutName:     rec[colWorkoutName],
		Date:            rec[colDate],
		TimeSeconds:     rec[colTimeSeconds],
		Reps:            rec[colReps],
		Load:            rec[colLoad],
		RoundsCompleted: rec[colRoundsCompleted],
		PartialReps:     rec[colPartialReps],
		IsRx:            rec[colIsRx],
		Notes:           rec[colNotes],
	}
}
