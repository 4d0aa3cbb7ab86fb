package models

import "time"

// BuildType partitions every registry query and storage path.
type BuildType string

const (
	BuildTypeWeb     BuildType = "web"
	BuildTypeAndroid BuildType = "android"
)

// ParseBuildType validates a client-supplied type string.
func ParseBuildType(s string) (BuildType, bool) {
	switch t := BuildType(s); t {
	case BuildTypeWeb, BuildTypeAndroid:
		return t, true
	}
	return "", false
}

// Build represents one uploaded artifact in the registry.
// Records are immutable; the only mutation is full deletion.
type Build struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        BuildType `json:"type" gorm:"size:16;not null;index"`
	Version     string    `json:"version" gorm:"size:128;not null"`
	Description string    `json:"description" gorm:"type:text"`
	UploadTime  time.Time `json:"upload_time" gorm:"not null;index"`
	ServePath   string    `json:"path" gorm:"size:512;not null;uniqueIndex"`
	// StoragePath is set for web builds only: the extracted directory that
	// has to be removed together with the record. Android artifacts are
	// resolved from ServePath instead.
	StoragePath string `json:"dir_path,omitempty" gorm:"size:512"`
	SizeBytes   int64  `json:"size"`
	Checksum    string `json:"checksum" gorm:"size:32"`
}
