package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/episodic-memory/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Record a memory entry",
		Long:  "Record a memory entry. Content can be a positional arg or piped via stdin. Known types get their conventional metadata stamped.",
		Run:   runAdd,
	}

	cmd.Flags().StringP("type", "t", model.TypeEvent, "Entry type (event, decision, insight, project, interaction, error, ...)")
	cmd.Flags().StringP("meta", "m", "", "JSON metadata object")
	cmd.Flags().String("project", "", "Project name (project entries)")
	cmd.Flags().String("source", "", "Insight source (insight entries)")
	cmd.Flags().String("severity", "", "Severity (error entries)")

	RootCmd.AddCommand(cmd)
}

func runAdd(cmd *cobra.Command, args []string) {
	entryType, _ := cmd.Flags().GetString("type")
	metaStr, _ := cmd.Flags().GetString("meta")
	project, _ := cmd.Flags().GetString("project")
	source, _ := cmd.Flags().GetString("source")
	severity, _ := cmd.Flags().GetString("severity")

	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}
	content = strings.TrimSpace(content)
	if content == "" {
		exitErr("add", fmt.Errorf("content is required (positional arg or stdin)"))
	}

	var md model.Metadata
	if metaStr != "" {
		if err := json.Unmarshal([]byte(metaStr), &md); err != nil {
			exitErr("parse meta", err)
		}
	}

	s, err := openSession(cmd.Context())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var entry *model.Entry
	switch entryType {
	case model.TypeDecision:
		entry, err = s.Writer.LogDecision(content, md)
	case model.TypeProject:
		if project == "" {
			project = "Unnamed Project"
		}
		entry, err = s.Writer.LogProject(content, project, md)
	case model.TypeInsight:
		entry, err = s.Writer.LogInsight(content, source, md)
	case model.TypeError:
		entry, err = s.Writer.LogError(content, severity, md)
	case model.TypeInteraction:
		entry, err = s.Writer.LogInteraction(content, md)
	case model.TypeEvent:
		entry, err = s.Writer.LogEvent(content, md)
	default:
		// Unrecognized type tags are accepted as-is.
		entry, err = s.Writer.Log(entryType, content, md)
	}
	if err != nil {
		exitErr("add", err)
	}

	if err := s.Journal.Append(cmd.Context(), entry); err != nil {
		exitErr("journal", err)
	}

	b, _ := json.Marshal(entry)
	fmt.Println(string(b))
}
