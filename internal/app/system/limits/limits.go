// internal/app/system/limits/limits.go
package limits

// Input size limits. These keep oversized requests and files from
// exhausting memory.
const (
	// MaxJSONBody is the maximum size of a JSON request body.
	MaxJSONBody = 1 << 20 // 1 MB

	// MaxSeedFile is the maximum size of the startup seed file.
	MaxSeedFile = 4 << 20 // 4 MB
)
