package rdb

import "time"

// WorkspaceRecord is the RDB persistence model for domain Workspace.
// Table name: workspaces
type WorkspaceRecord struct {
	ID             string    `gorm:"primaryKey;type:text;not null"`
	Name           string    `gorm:"type:text;not null"`
	Driver         string    `gorm:"type:text;not null"`
	SubscriptionID string    `gorm:"type:text;not null"`
	ResourceGroup  string    `gorm:"type:text;not null"`
	Location       string    `gorm:"type:text;not null"`
	StorageAccount string    `gorm:"type:text"`
	KeyVault       string    `gorm:"type:text"`
	State          string    `gorm:"type:text"`
	Settings       string    `gorm:"type:text"` // JSON encoded map[string]string
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

func (WorkspaceRecord) TableName() string { return "workspaces" }

// ComputeTargetRecord persistence model
type ComputeTargetRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	Name        string    `gorm:"type:text;not null"`
	WorkspaceID string    `gorm:"type:text;not null"` // references Workspace
	Kind        string    `gorm:"type:text;not null"`
	VMSize      string    `gorm:"type:text"`
	MinNodes    int32     `gorm:"not null"`
	MaxNodes    int32     `gorm:"not null"`
	State       string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (ComputeTargetRecord) TableName() string { return "compute_targets" }

// ModelRecord persistence model
type ModelRecord struct {
	ID          string    `gorm:"primaryKey;type:text;not null"`
	Name        string    `gorm:"type:text;not null;index:idx_model_name_version,unique,priority:1"`
	Version     int       `gorm:"not null;index:idx_model_name_version,unique,priority:2"`
	WorkspaceID string    `gorm:"type:text;not null"` // references Workspace
	Path        string    `gorm:"type:text;not null"`
	Checksum    string    `gorm:"type:text"`
	Description string    `gorm:"type:text"`
	Tags        string    `gorm:"type:text"` // JSON encoded map[string]string
	CreatedAt   time.Time `gorm:"not null"`
}

func (ModelRecord) TableName() string { return "models" }

// ImageRecord persistence model
type ImageRecord struct {
	ID            string    `gorm:"primaryKey;type:text;not null"`
	Name          string    `gorm:"type:text;not null"`
	Tag           string    `gorm:"type:text"`
	Registry      string    `gorm:"type:text"`
	ModelID       string    `gorm:"type:text;not null"` // references Model
	WorkspaceID   string    `gorm:"type:text;not null"` // references Workspace
	BaseImage     string    `gorm:"type:text"`
	Ref           string    `gorm:"type:text"`
	Digest        string    `gorm:"type:text"`
	BuildID       string    `gorm:"type:text"`
	ScoringScript string    `gorm:"type:text"`
	Manifest      string    `gorm:"type:text"`
	State         string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (ImageRecord) TableName() string { return "images" }

// ServiceRecord persistence model
type ServiceRecord struct {
	ID              string    `gorm:"primaryKey;type:text;not null"`
	Name            string    `gorm:"type:text;not null"`
	WorkspaceID     string    `gorm:"type:text;not null"` // references Workspace
	ImageID         string    `gorm:"type:text;not null"` // references Image
	ComputeTargetID string    `gorm:"type:text"`          // references ComputeTarget
	Target          string    `gorm:"type:text;not null"`
	State           string    `gorm:"type:text"`
	ScoringURI      string    `gorm:"type:text"`
	SwaggerURI      string    `gorm:"type:text"`
	PrimaryKey      string    `gorm:"type:text"`
	SecondaryKey    string    `gorm:"type:text"`
	AuthEnabled     bool      `gorm:"not null"`
	CPU             float64   `gorm:"not null"`
	MemoryGB        float64   `gorm:"not null"`
	Replicas        int32     `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

func (ServiceRecord) TableName() string { return "services" }
