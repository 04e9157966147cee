package models

import "time"

// Test is the activation record for one scheduled interview. A candidate
// redeems the activation code to obtain the session configuration.
type Test struct {
	ID           string     `bson:"_id,omitempty" json:"id"`
	TestID       string     `bson:"test_id" json:"test_id"`
	ActivateCode string     `bson:"activate_code" json:"activate_code"`
	UserID       string     `bson:"user_id" json:"user_id"`
	UserName     string     `bson:"user_name" json:"user_name"`
	JobID        string     `bson:"job_id" json:"job_id"`
	JobTitle     string     `bson:"job_title" json:"job_title"`
	Language     Language   `bson:"language" json:"language"`
	Difficulty   Difficulty `bson:"difficulty" json:"difficulty"`
	TestTime     int        `bson:"test_time" json:"test_time"`
	ExaminePoint string     `bson:"examine_point" json:"examine_point"`
	Status       TestStatus `bson:"status" json:"status"`
	CreateDate   time.Time  `bson:"create_date" json:"create_date"`
	StartDate    time.Time  `bson:"start_date" json:"start_date"`
	CloseDate    time.Time  `bson:"close_date" json:"close_date"`
}
