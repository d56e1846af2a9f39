package cmd

import "time"

type Config struct {
	HTTPPort               string
	MongoURI               string
	MongoDatabase          string
	DispatchRadiusMeters   float64
	DispatchCandidateLimit int
	DispatchGeoTimeout     time.Duration
	SweepSchedule          string
	SweepBatchSize         int
	LogFilePath            string
}
