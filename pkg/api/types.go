package api

import "github.com/dbfkit/dbfkit/pkg/dbf"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port    int
	Bind    string
	DataDir string

	// Decode is applied to every table the gateway opens.
	Decode dbf.Options

	// MaxBatchRecords caps the per-request record count. Zero means the
	// default of 1000.
	MaxBatchRecords int
}

// TableInfo is one entry of the table listing
type TableInfo struct {
	Name    string `json:"name"`
	HasMemo bool   `json:"has_memo"`
}

// FieldInfo describes one column of a table schema
type FieldInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Size     int    `json:"size"`
	Decimals int    `json:"decimals"`
}

// SchemaResponse is the decoded header of one table
type SchemaResponse struct {
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	RecordCount uint32      `json:"record_count"`
	LastUpdated string      `json:"last_updated"`
	Fields      []FieldInfo `json:"fields"`
}

// RecordPayload is one decoded record. The deleted marker travels beside
// the fields, never inside them, so it cannot collide with a real column.
type RecordPayload struct {
	Deleted bool                   `json:"deleted"`
	Fields  map[string]interface{} `json:"fields"`
}

// RecordsResponse is a page of decoded records
type RecordsResponse struct {
	Table   string          `json:"table"`
	Count   int             `json:"count"`
	Records []RecordPayload `json:"records"`
}
