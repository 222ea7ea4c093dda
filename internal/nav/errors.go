package nav

import "fmt"

// ErrorKind classifies a resolve failure.
type ErrorKind string

const (
	KindMissingTitle          ErrorKind = "missing_title"
	KindEmptySidebar          ErrorKind = "empty_sidebar"
	KindInvalidEntryShape     ErrorKind = "invalid_entry_shape"
	KindDuplicatePath         ErrorKind = "duplicate_path"
	KindInvalidPluginSettings ErrorKind = "invalid_plugin_settings"
	KindInvalidField          ErrorKind = "invalid_field"
)

// ConfigError is returned by Resolve. Only the fields relevant to Kind are set.
type ConfigError struct {
	Kind   ErrorKind
	Index  int    // sidebar index, InvalidEntryShape
	Path   string // duplicated path, DuplicatePath
	Plugin string // plugin name, InvalidPluginSettings
	Field  string // dotted field name, InvalidField
	Detail string
}

// Sentinels for errors.Is matching on the kind alone.
var (
	ErrMissingTitle          = &ConfigError{Kind: KindMissingTitle}
	ErrEmptySidebar          = &ConfigError{Kind: KindEmptySidebar}
	ErrInvalidEntryShape     = &ConfigError{Kind: KindInvalidEntryShape}
	ErrDuplicatePath         = &ConfigError{Kind: KindDuplicatePath}
	ErrInvalidPluginSettings = &ConfigError{Kind: KindInvalidPluginSettings}
	ErrInvalidField          = &ConfigError{Kind: KindInvalidField}
)

func (e *ConfigError) Error() string {
	var msg string
	switch e.Kind {
	case KindMissingTitle:
		msg = "title must be a non-empty string"
	case KindEmptySidebar:
		msg = "themeConfig.sidebar must be a non-empty list"
	case KindInvalidEntryShape:
		msg = fmt.Sprintf("themeConfig.sidebar[%d]: invalid entry", e.Index)
	case KindDuplicatePath:
		msg = fmt.Sprintf("duplicate sidebar path %q", e.Path)
	case KindInvalidPluginSettings:
		msg = fmt.Sprintf("plugin %q: settings must be a mapping", e.Plugin)
	case KindInvalidField:
		msg = fmt.Sprintf("%s: invalid value", e.Field)
	default:
		msg = string(e.Kind)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Is reports whether target is a ConfigError of the same kind.
func (e *ConfigError) Is(target error) bool {
	t, ok := target.(*ConfigError)
	return ok && t.Kind == e.Kind
}

func missingTitle(detail string) error {
	return &ConfigError{Kind: KindMissingTitle, Detail: detail}
}

func emptySidebar(detail string) error {
	return &ConfigError{Kind: KindEmptySidebar, Detail: detail}
}

func invalidEntry(index int, format string, args ...any) error {
	return &ConfigError{Kind: KindInvalidEntryShape, Index: index, Detail: fmt.Sprintf(format, args...)}
}

func duplicatePath(p LeafPath) error {
	return &ConfigError{Kind: KindDuplicatePath, Path: string(p)}
}

func invalidPlugin(name string, v any) error {
	return &ConfigError{Kind: KindInvalidPluginSettings, Plugin: name, Detail: fmt.Sprintf("got %s", describe(v))}
}

func invalidField(field string, format string, args ...any) error {
	return &ConfigError{Kind: KindInvalidField, Field: field, Detail: fmt.Sprintf(format, args...)}
}

// describe names the dynamic type of a decoded value the way a config author
// would read it.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case int, int64, uint64, float64:
		return "number"
	case []any, []string:
		return "list"
	case map[string]any, map[any]any:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
