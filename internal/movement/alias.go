package movement

// aliases maps a lowercase movement variant to its canonical name.
// Keys are matched after trimming and lowercasing; plural forms ending in a
// plain "s" are handled by the normalizer and need no entry of their own.
var aliases = map[string]string{
	// Gymnastics
	"pull-up":              "Pull-Up",
	"pullup":               "Pull-Up",
	"pull up":              "Pull-Up",
	"kipping pull-up":      "Pull-Up",
	"chest-to-bar pull-up": "Chest-to-Bar Pull-Up",
	"chest to bar pull-up": "Chest-to-Bar Pull-Up",
	"chest-to-bar":         "Chest-to-Bar Pull-Up",
	"chest to bar":         "Chest-to-Bar Pull-Up",
	"c2b":                  "Chest-to-Bar Pull-Up",
	"muscle-up":            "Muscle-Up",
	"muscle up":            "Muscle-Up",
	"muscleup":             "Muscle-Up",
	"bar muscle-up":        "Bar Muscle-Up",
	"bar muscle up":        "Bar Muscle-Up",
	"ring muscle-up":       "Ring Muscle-Up",
	"ring muscle up":       "Ring Muscle-Up",
	"push-up":              "Push-Up",
	"pushup":               "Push-Up",
	"push up":              "Push-Up",
	"hand release push-up": "Hand-Release Push-Up",
	"handstand push-up":    "Handstand Push-Up",
	"handstand push up":    "Handstand Push-Up",
	"hspu":                 "Handstand Push-Up",
	"handstand walk":       "Handstand Walk",
	"toes-to-bar":          "Toes-to-Bar",
	"toes to bar":          "Toes-to-Bar",
	"toe-to-bar":           "Toes-to-Bar",
	"toe to bar":           "Toes-to-Bar",
	"t2b":                  "Toes-to-Bar",
	"knees-to-elbow":       "Knees-to-Elbow",
	"knees to elbow":       "Knees-to-Elbow",
	"k2e":                  "Knees-to-Elbow",
	"sit-up":               "Sit-Up",
	"situp":                "Sit-Up",
	"sit up":               "Sit-Up",
	"abmat sit-up":         "Sit-Up",
	"ghd sit-up":           "GHD Sit-Up",
	"ghd sit up":           "GHD Sit-Up",
	"ring dip":             "Ring Dip",
	"dip":                  "Ring Dip",
	"rope climb":           "Rope Climb",
	"legless rope climb":   "Legless Rope Climb",
	"pistol":               "Pistol",
	"pistol squat":         "Pistol",
	"burpee":               "Burpee",
	"bar-facing burpee":    "Bar-Facing Burpee",
	"bar facing burpee":    "Bar-Facing Burpee",
	"burpee box jump-over": "Burpee Box Jump-Over",
	"burpee pull-up":       "Burpee Pull-Up",
	"air squat":            "Air Squat",
	"squat":                "Air Squat",
	"lunge":                "Lunge",
	"walking lunge":        "Walking Lunge",
	"box jump":             "Box Jump",
	"box jump-over":        "Box Jump-Over",
	"box jump over":        "Box Jump-Over",
	"step-up":              "Box Step-Up",
	"box step-up":          "Box Step-Up",
	"double-under":         "Double-Under",
	"double under":         "Double-Under",
	"du":                   "Double-Under",
	"single-under":         "Single-Under",
	"single under":         "Single-Under",
	"l-sit":                "L-Sit",
	"hollow rock":          "Hollow Rock",
	"back extension":       "Back Extension",

	// Weightlifting
	"thruster":                  "Thruster",
	"clean":                     "Clean",
	"power clean":               "Power Clean",
	"squat clean":               "Squat Clean",
	"hang power clean":          "Hang Power Clean",
	"hang clean":                "Hang Clean",
	"hang squat clean":          "Hang Squat Clean",
	"clean and jerk":            "Clean and Jerk",
	"clean & jerk":              "Clean and Jerk",
	"c&j":                       "Clean and Jerk",
	"snatch":                    "Snatch",
	"power snatch":              "Power Snatch",
	"squat snatch":              "Squat Snatch",
	"hang power snatch":         "Hang Power Snatch",
	"hang snatch":               "Hang Snatch",
	"deadlift":                  "Deadlift",
	"sumo deadlift":             "Sumo Deadlift",
	"sumo deadlift high-pull":   "Sumo Deadlift High Pull",
	"sumo deadlift high pull":   "Sumo Deadlift High Pull",
	"sdhp":                      "Sumo Deadlift High Pull",
	"back squat":                "Back Squat",
	"front squat":               "Front Squat",
	"overhead squat":            "Overhead Squat",
	"ohs":                       "Overhead Squat",
	"shoulder press":            "Shoulder Press",
	"strict press":              "Shoulder Press",
	"press":                     "Shoulder Press",
	"push press":                "Push Press",
	"push jerk":                 "Push Jerk",
	"split jerk":                "Split Jerk",
	"jerk":                      "Push Jerk",
	"bench press":               "Bench Press",
	"overhead lunge":            "Overhead Lunge",
	"front rack lunge":          "Front Rack Lunge",
	"wall ball":                 "Wall Ball",
	"wall-ball":                 "Wall Ball",
	"wallball":                  "Wall Ball",
	"wall ball shot":            "Wall Ball",
	"kettlebell swing":          "Kettlebell Swing",
	"kb swing":                  "Kettlebell Swing",
	"russian kettlebell swing":  "Kettlebell Swing",
	"american kettlebell swing": "Kettlebell Swing",
	"kettlebell snatch":         "Kettlebell Snatch",
	"turkish get-up":            "Turkish Get-Up",
	"turkish get up":            "Turkish Get-Up",
	"tgu":                       "Turkish Get-Up",
	"dumbbell snatch":           "Dumbbell Snatch",
	"db snatch":                 "Dumbbell Snatch",
	"dumbbell thruster":         "Dumbbell Thruster",
	"db thruster":               "Dumbbell Thruster",
	"devil press":               "Devil Press",
	"devils press":              "Devil Press",
	"man maker":                 "Man Maker",
	"farmers carry":             "Farmer's Carry",
	"farmer carry":              "Farmer's Carry",
	"farmer's carry":            "Farmer's Carry",
	"sandbag carry":             "Sandbag Carry",
	"medicine ball clean":       "Medicine Ball Clean",
	"med ball clean":            "Medicine Ball Clean",

	// Monostructural
	"run":          "Run",
	"running":      "Run",
	"sprint":       "Run",
	"row":          "Row",
	"rowing":       "Row",
	"row erg":      "Row",
	"bike":         "Bike",
	"assault bike": "Bike",
	"echo bike":    "Bike",
	"air bike":     "Bike",
	"ski":          "Ski Erg",
	"ski erg":      "Ski Erg",
	"skierg":       "Ski Erg",
	"swim":         "Swim",
	"jump rope":    "Single-Under",
	"shuttle run":  "Shuttle Run",
	"sled push":    "Sled Push",
	"sled pull":    "Sled Pull",
}

// lookupAlias returns the canonical name for an already cleaned key.
func lookupAlias(key string) (string, bool) {
	name, ok := aliases[key]
	return name, ok
}
