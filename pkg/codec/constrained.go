package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Choice returns a codec restricted to a closed set of string options.
// Membership is checked during the validation phase.
func Choice(options ...string) Codec {
	allowed := make(map[string]struct{}, len(options))
	for _, opt := range options {
		allowed[opt] = struct{}{}
	}

	return Codec{
		Decode: decodeString,
		Encode: encodeString,
		Check: func(v any) error {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("expected string, got %T", v)
			}
			if _, exists := allowed[s]; !exists {
				return fmt.Errorf("value %q is not one of: %s", s, strings.Join(options, ", "))
			}
			return nil
		},
	}
}

// File returns a codec for file paths. Paths must not contain commas, must
// carry one of the given extensions when any are listed, and must name an
// existing regular file when mustExist is set.
func File(mustExist bool, extensions ...string) Codec {
	exts := normalizeExtensions(extensions)

	return Codec{
		Decode: decodePath,
		Encode: encodeString,
		Check: func(v any) error {
			path, err := checkPath(v)
			if err != nil {
				return err
			}
			if len(exts) > 0 && !hasExtension(path, exts) {
				return fmt.Errorf("path %q must end in one of: %s", path, strings.Join(exts, ", "))
			}
			if mustExist {
				info, err := os.Stat(path)
				if err != nil || info.IsDir() {
					return fmt.Errorf("no such file: %q", path)
				}
			}
			return nil
		},
	}
}

// Folder returns a codec for directory paths. Paths must not contain commas
// and must name an existing directory when mustExist is set.
func Folder(mustExist bool) Codec {
	return Codec{
		Decode: decodePath,
		Encode: encodeString,
		Check: func(v any) error {
			path, err := checkPath(v)
			if err != nil {
				return err
			}
			if mustExist {
				info, err := os.Stat(path)
				if err != nil || !info.IsDir() {
					return fmt.Errorf("no such directory: %q", path)
				}
			}
			return nil
		},
	}
}

func decodePath(token string) (any, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", nil
	}
	return filepath.Clean(token), nil
}

func checkPath(v any) (string, error) {
	path, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("expected string path, got %T", v)
	}
	if strings.Contains(path, ",") {
		return "", fmt.Errorf("path %q must not contain commas", path)
	}
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	return path, nil
}

func normalizeExtensions(extensions []string) []string {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	return exts
}

func hasExtension(path string, exts []string) bool {
	ext := filepath.Ext(path)
	for _, want := range exts {
		if ext == want {
			return true
		}
	}
	return false
}
