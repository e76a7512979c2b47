package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnv overrides options from CITYHALL_* environment variables.
// Unset or unparsable variables leave the option untouched.
func ApplyEnv(o *Options) {
	if val, ok := getEnvInt64("CITYHALL_SEED"); ok {
		o.Seed = val
	}
	if val, ok := getEnvInt("CITYHALL_DAYS_PER_YEAR"); ok && val > 0 {
		o.Game.DaysPerYear = val
	}
	if val, ok := getEnvInt("CITYHALL_LAST_DAYS_COUNT"); ok && val >= 0 {
		o.Game.LastDaysCount = val
	}
	if val, ok := getEnvFloat("CITYHALL_LAST_DAYS_MULTIPLIER"); ok {
		o.Game.LastDaysMultiplier = val
	}
	if val, ok := getEnvFloat("CITYHALL_POPULARITY_TO_LOSE"); ok {
		o.Game.PopularityToLose = val
	}
	if val, ok := getEnvFloat("CITYHALL_POPULARITY_TO_WIN"); ok {
		o.Game.PopularityToWin = val
	}
	if val, ok := getEnvBool("CITYHALL_RANDOM_ORDER"); ok {
		o.District.RandomOrder = val
	}
	if val, ok := getEnvBool("CITYHALL_ALL_UNIQUE"); ok {
		o.District.AllUnique = val
	}
	if val, ok := getEnvInt("CITYHALL_MAP_SIZE"); ok && val > 0 {
		o.District.MapSize = val
	}
	if val := os.Getenv("CITYHALL_DISTRICTS"); val != "" {
		o.District.Districts = splitList(val)
	}
	if val, ok := getEnvDuration("CITYHALL_TIME_TO_SHOW_CONSEQUENCE"); ok {
		o.Action.TimeToShowConsequence = val
	}

	// Preset pacing modes
	switch os.Getenv("CITYHALL_PACE") {
	case "fast":
		o.Action.TimeToShowConsequence = time.Second
		o.Action.TimeBetweenTurns = 100 * time.Millisecond
		o.District.TotalSlideTime = 250 * time.Millisecond
	case "slow":
		o.Action.TimeToShowConsequence = 5 * time.Second
		o.Action.TimeBetweenTurns = 500 * time.Millisecond
	}
}

func getEnvInt(key string) (int, bool) {
	val, err := strconv.Atoi(os.Getenv(key))
	return val, err == nil
}

func getEnvInt64(key string) (int64, bool) {
	val, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	return val, err == nil
}

func getEnvFloat(key string) (float64, bool) {
	val, err := strconv.ParseFloat(os.Getenv(key), 64)
	return val, err == nil
}

func getEnvBool(key string) (bool, bool) {
	val, err := strconv.ParseBool(os.Getenv(key))
	return val, err == nil
}

func getEnvDuration(key string) (time.Duration, bool) {
	val, err := time.ParseDuration(os.Getenv(key))
	return val, err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
