// File: internal/config/project.go
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Name of the per-project file looked up while walking towards the root
const ProjectFileName = ".scpsync"

// Project is the governing configuration of a local directory tree.
// It is immutable once returned by Parse.
type Project struct {
	// Absolute path of the file that defined this project
	File string
	// Directory containing File, used as the local root
	BasePath string
	// Remote root, always terminated by "/"
	RemotePath string
	Host       string
	User       string
	// Zero means "use the tool setting"
	Port int
	// Empty means "use the tool setting"
	Transport      string
	IgnorePatterns []string
	IgnoreGlobs    []string
	// Echoes transport operations, independent of the CLI --verbose flag
	Verbose bool
}

// Returns "user@host" when a user is configured, "host" otherwise
func (p *Project) Credentials() string {
	if p.User != "" {
		return p.User + "@" + p.Host
	}
	return p.Host
}

type rawProject struct {
	RemotePath string `mapstructure:"remote_path" validate:"required"`
	Host       string `mapstructure:"host" validate:"required"`
	User       string `mapstructure:"user"`
	Port       int    `mapstructure:"port" validate:"gte=0,lte=65535"`
	Transport  string `mapstructure:"transport"`
	Ignore     any    `mapstructure:"ignore"`
	IgnoreGlob any    `mapstructure:"ignore_glob"`
	Verbose    bool   `mapstructure:"verbose"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report failures under the document key, not the Go field name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Parses the contents of a project file located at file.
// JSON is the canonical format; any YAML mapping is accepted as well.
func Parse(file string, data []byte) (*Project, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, &ConfigParseError{File: file, Cause: fmt.Errorf("error parsing config file: %w", err)}
	}

	var raw rawProject
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &raw,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, &ConfigParseError{File: file, Cause: err}
	}
	if err := decoder.Decode(doc); err != nil {
		return nil, &ConfigParseError{File: file, Cause: fmt.Errorf("error decoding config file: %w", err)}
	}

	parseErr := &ConfigParseError{File: file}
	if err := validate.Struct(raw); err != nil {
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			return nil, &ConfigParseError{File: file, Cause: err}
		}
		for _, fe := range validationErrs {
			if fe.Tag() == "required" {
				parseErr.Missing = append(parseErr.Missing, fe.Field())
			} else {
				parseErr.Invalid = append(parseErr.Invalid, fmt.Sprintf("%s (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
			}
		}
	}

	patterns, err := stringSequence(raw.Ignore)
	if err != nil {
		parseErr.Invalid = append(parseErr.Invalid, "ignore: "+err.Error())
	}
	globs, err := stringSequence(raw.IgnoreGlob)
	if err != nil {
		parseErr.Invalid = append(parseErr.Invalid, "ignore_glob: "+err.Error())
	}

	if len(parseErr.Missing) > 0 || len(parseErr.Invalid) > 0 {
		return nil, parseErr
	}

	remotePath := raw.RemotePath
	if !strings.HasSuffix(remotePath, "/") {
		remotePath += "/"
	}

	return &Project{
		File:           file,
		BasePath:       filepath.Dir(file),
		RemotePath:     remotePath,
		Host:           raw.Host,
		User:           raw.User,
		Port:           raw.Port,
		Transport:      strings.ToLower(raw.Transport),
		IgnorePatterns: patterns,
		IgnoreGlobs:    globs,
		Verbose:        raw.Verbose,
	}, nil
}

// A document opening with "{" is JSON and gets JSON semantics (every escape,
// duplicate keys last-wins). Anything else is read as a YAML mapping.
func decodeDocument(data []byte) (map[string]any, error) {
	var doc map[string]any
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
	} else if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// Anything that is not a sequence means "no patterns". Entries of a sequence must be strings.
func stringSequence(value any) ([]string, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, nil
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("entry %d is %T, not a string", i, item)
		}
		out = append(out, s)
	}
	return out, nil
}
