package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

type fileField struct {
	Name     string   `yaml:"name"`
	Type     string   `yaml:"type"`
	Nullable bool     `yaml:"nullable"`
	Min      *float64 `yaml:"min"`
	Max      *float64 `yaml:"max"`
	Start    string   `yaml:"start"`
	End      string   `yaml:"end"`
	Values   []string `yaml:"values"`
	Ref      string   `yaml:"ref"`
	RefField string   `yaml:"ref_field"`
	Pattern  string   `yaml:"pattern"`
	MaxChars int      `yaml:"max_chars"`
	OnlyIf   *struct {
		Field  string `yaml:"field"`
		Equals string `yaml:"equals"`
	} `yaml:"only_if"`
}

type fileSchema struct {
	Name   string      `yaml:"name"`
	Fields []fileField `yaml:"fields"`
}

// LoadFile parses a YAML schema definition and registers it. The file
// holds one schema: a name and an ordered field list.
func LoadFile(r *Registry, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	var fs fileSchema
	if err := yaml.Unmarshal(data, &fs); err != nil {
		return fmt.Errorf("failed to parse schema file %s: %w", path, err)
	}

	def, err := fs.toDef()
	if err != nil {
		return fmt.Errorf("schema file %s: %w", path, err)
	}
	return r.Register(def)
}

// LoadDir registers every .yaml/.yml schema in dir, in name order.
func LoadDir(r *Registry, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read schema directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	for _, file := range files {
		if err := LoadFile(r, file); err != nil {
			return err
		}
	}
	return nil
}

func (fs *fileSchema) toDef() (*SchemaDef, error) {
	def := &SchemaDef{Name: fs.Name}
	for _, f := range fs.Fields {
		field := FieldDef{
			Name:     f.Name,
			Kind:     FieldKind(strings.ToLower(f.Type)),
			Nullable: f.Nullable,
			Values:   f.Values,
			Ref:      f.Ref,
			RefField: f.RefField,
			Pattern:  f.Pattern,
			MaxChars: f.MaxChars,
		}
		if f.Min != nil {
			field.Min = *f.Min
		}
		if f.Max != nil {
			field.Max = *f.Max
		}
		if f.Start != "" {
			start, err := time.Parse(dateLayout, f.Start)
			if err != nil {
				return nil, fmt.Errorf("field %s: bad start date %q: %w", f.Name, f.Start, err)
			}
			field.Start = start
		}
		if f.End != "" {
			end, err := time.Parse(dateLayout, f.End)
			if err != nil {
				return nil, fmt.Errorf("field %s: bad end date %q: %w", f.Name, f.End, err)
			}
			field.End = end
		}
		if f.OnlyIf != nil {
			field.OnlyIf = &Condition{Field: f.OnlyIf.Field, Equals: f.OnlyIf.Equals}
		}
		def.Fields = append(def.Fields, field)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return def, nil
}
