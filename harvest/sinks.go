package harvest

import (
	"fmt"
	"io"

	"github.com/hazyhaar/revq/harvest/internal/sink"
)

// Sink is the output interface for harvest results.
type Sink = sink.Sink

// NewStdoutSink creates a stdout JSON-lines sink.
func NewStdoutSink(w io.Writer) Sink {
	return sink.NewStdout(w)
}

// NewFileSink creates a sink writing the result document to a JSON file.
func NewFileSink(path string) (Sink, error) {
	return sink.NewFile(path)
}

// NewSQLiteSink creates a run-history sink backed by a local SQLite
// database. The caller must blank-import a driver.
func NewSQLiteSink(path string) (Sink, error) {
	return sink.NewSQLite(path)
}

// BuildSinks constructs every sink named in the configuration.
func BuildSinks(cfg *Config) ([]Sink, error) {
	var sinks []Sink
	for _, sc := range cfg.Sinks {
		switch sc.Type {
		case "stdout":
			sinks = append(sinks, NewStdoutSink(nil))
		case "file":
			s, err := NewFileSink(sc.Path)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, s)
		case "sqlite":
			s, err := NewSQLiteSink(sc.Path)
			if err != nil {
				return nil, err
			}
			sinks = append(sinks, s)
		default:
			return nil, fmt.Errorf("harvest: unknown sink type %q", sc.Type)
		}
	}
	return sinks, nil
}
