package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/GLADI8R/landscape2/internal/core/domain"
)

// Projects export file names.
const (
	ProjectsMarkdownFile = "projects.md"
	ProjectsCSVFile      = "projects.csv"
)

// project is an item with a maturity level, flattened for the exports.
type project struct {
	Name         string
	Maturity     string
	Category     string
	Subcategory  string
	HomepageURL  string
	Repository   string
	AcceptedAt   string
	IncubatingAt string
	GraduatedAt  string
}

// projectsOf returns the items that have a maturity, sorted by name.
func projectsOf(data *domain.LandscapeData) []project {
	var projects []project
	for i := range data.Items {
		item := &data.Items[i]
		if item.Maturity == "" {
			continue
		}
		p := project{
			Name:         item.Name,
			Maturity:     item.Maturity,
			Category:     item.Category,
			Subcategory:  item.Subcategory,
			HomepageURL:  item.HomepageURL,
			AcceptedAt:   formatDate(item.AcceptedAt),
			IncubatingAt: formatDate(item.IncubatingAt),
			GraduatedAt:  formatDate(item.GraduatedAt),
		}
		if repo := item.PrimaryRepository(); repo != nil {
			p.Repository = repo.URL
		}
		projects = append(projects, p)
	}
	sort.SliceStable(projects, func(i, j int) bool {
		return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
	})
	return projects
}

var projectsCSVHeader = []string{
	"project",
	"maturity",
	"category",
	"subcategory",
	"homepage_url",
	"repository",
	"accepted_date",
	"incubating_date",
	"graduated_date",
}

// projectsCSV renders the projects CSV export.
func projectsCSV(projects []project) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(projectsCSVHeader); err != nil {
		return nil, err
	}
	for _, p := range projects {
		record := []string{
			p.Name,
			p.Maturity,
			p.Category,
			p.Subcategory,
			p.HomepageURL,
			p.Repository,
			p.AcceptedAt,
			p.IncubatingAt,
			p.GraduatedAt,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing project %s: %w", p.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var projectsMarkdownTemplate = template.Must(template.New(ProjectsMarkdownFile).
	Funcs(template.FuncMap{"cell": markdownCell}).
	Parse(`# Projects

| Project | Maturity | Accepted | Incubating | Graduated |
|---------|----------|----------|------------|-----------|
{{- range .}}
| {{if .HomepageURL}}[{{cell .Name}}]({{.HomepageURL}}){{else}}{{cell .Name}}{{end}} | {{cell .Maturity}} | {{.AcceptedAt}} | {{.IncubatingAt}} | {{.GraduatedAt}} |
{{- end}}
`))

// projectsMarkdown renders the projects Markdown table.
func projectsMarkdown(projects []project) ([]byte, error) {
	var buf bytes.Buffer
	if err := projectsMarkdownTemplate.Execute(&buf, projects); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// markdownCell escapes text placed in a table cell.
func markdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// writeProjects writes projects.md and projects.csv to <output>/docs.
func writeProjects(layout *Layout, data *domain.LandscapeData) error {
	projects := projectsOf(data)

	md, err := projectsMarkdown(projects)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", ProjectsMarkdownFile, err)
	}
	if err := writeFileAtomic(layout.Path(DocsDir, ProjectsMarkdownFile), md); err != nil {
		return fmt.Errorf("writing %s: %w", ProjectsMarkdownFile, err)
	}

	raw, err := projectsCSV(projects)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", ProjectsCSVFile, err)
	}
	if err := writeFileAtomic(layout.Path(DocsDir, ProjectsCSVFile), raw); err != nil {
		return fmt.Errorf("writing %s: %w", ProjectsCSVFile, err)
	}
	return nil
}
