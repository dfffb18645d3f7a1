// Package writer provides typed helpers for recording memory entries with
// consistent metadata: decisions, events, projects, insights, interactions,
// and errors.
package writer

import (
	"time"

	"github.com/rcliao/episodic-memory/internal/model"
	"github.com/rcliao/episodic-memory/internal/store"
)

// Writer records typed entries into one injected store instance.
type Writer struct {
	store *store.Store
}

// New constructs a Writer over the given store.
func New(s *store.Store) *Writer {
	return &Writer{store: s}
}

// Log records an entry of an arbitrary type.
func (w *Writer) Log(entryType, content string, md model.Metadata) (*model.Entry, error) {
	return w.store.Add(&model.Entry{Type: entryType, Content: content, Metadata: md})
}

// LogDecision records a decision. The decision time is stamped into the
// metadata; decision_type defaults to "system" when the caller did not
// set one.
func (w *Writer) LogDecision(content string, md model.Metadata) (*model.Entry, error) {
	md = cloneMeta(md)
	md["decision_time"] = time.Now().Format(time.RFC3339)
	if _, ok := md["decision_type"]; !ok {
		md["decision_type"] = "system"
	}
	return w.Log(model.TypeDecision, content, md)
}

// LogEvent records an event or occurrence.
func (w *Writer) LogEvent(content string, md model.Metadata) (*model.Entry, error) {
	return w.Log(model.TypeEvent, content, md)
}

// LogProject records a project entry, forcing project_name into the
// metadata so relational joins can find it.
func (w *Writer) LogProject(content, projectName string, md model.Metadata) (*model.Entry, error) {
	md = cloneMeta(md)
	md["project_name"] = projectName
	return w.Log(model.TypeProject, content, md)
}

// LogInsight records an observation or realization, tagging its source
// when one is given.
func (w *Writer) LogInsight(content, source string, md model.Metadata) (*model.Entry, error) {
	md = cloneMeta(md)
	if source != "" {
		md["source"] = source
	}
	return w.Log(model.TypeInsight, content, md)
}

// LogInteraction records a user interaction.
func (w *Writer) LogInteraction(content string, md model.Metadata) (*model.Entry, error) {
	return w.Log(model.TypeInteraction, content, md)
}

// LogError records an error or warning. Severity defaults to "info".
func (w *Writer) LogError(content, severity string, md model.Metadata) (*model.Entry, error) {
	if severity == "" {
		severity = "info"
	}
	md = cloneMeta(md)
	md["severity"] = severity
	md["error_time"] = time.Now().Format(time.RFC3339)
	return w.Log(model.TypeError, content, md)
}

// cloneMeta copies caller metadata before stamping standard keys, so the
// caller's map is never mutated.
func cloneMeta(md model.Metadata) model.Metadata {
	out := make(model.Metadata, len(md)+2)
	for k, v := range md {
		out[k] = v
	}
	return out
}
