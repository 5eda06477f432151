package models

import "time"

const (
	// SparkSoftLimit is the content budget shown to users. Submissions over
	// it are rejected.
	SparkSoftLimit = 280
	// SparkHardLimit is the absolute input cap; composers stop accepting
	// characters past it.
	SparkHardLimit = 300
)

// Spark is a user's single daily post. Day holds the author-local calendar
// date (YYYY-MM-DD); the composite unique index backstops the one-spark-
// per-user-per-day invariant against concurrent submissions from multiple
// devices.
type Spark struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"not null;type:varchar(36);uniqueIndex:uidx_spark_user_day"`
	Day       string    `json:"-" gorm:"not null;type:varchar(10);uniqueIndex:uidx_spark_user_day"`
	Content   string    `json:"content" gorm:"not null;type:varchar(300)" validate:"required,max=280"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Profile *Profile `json:"profiles,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// DayOf formats t's local calendar date the way Spark.Day stores it.
func DayOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// DayRange returns the half-open interval covering t's local calendar day.
func DayRange(t time.Time) (from, to time.Time) {
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}

// FeedSpark is a Spark as the feed presents it: author embedded and the
// caller's bookmark state merged in.
type FeedSpark struct {
	Spark
	IsSaved bool `json:"is_saved"`
}
