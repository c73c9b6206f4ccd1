package cli

const rootTemplate = `
=== {{.Kind}} ===

ID:      {{.ID}}
Title:   {{.Title}}
Version: {{.Version}}
Updated: {{.UpdatedAt.Format "2006-01-02 15:04:05"}}
`

const syncTemplate = `
{{- if .FromCache}}
✓ {{.Kind}} {{.RootID}} is cached, no server request made
{{- else}}
✓ {{.Kind}} {{.RootID}} synchronized

Children cached:      {{.Children}}
Grandchildren cached: {{.Grandchildren}}
{{- if .Skipped}}
Skipped (errors):     {{.Skipped}}
{{- range .Warnings}}
  - {{.}}
{{- end}}
{{- end}}
{{- end}}
`

const statusTemplate = `
=== Cache status of {{.Kind}} {{.RootID}} ===

Root cached:     {{yesno .RootCached}}
Children cached: {{.Children}}
{{- range .Branches}}
  {{.ID}}: {{.Grandchildren}} grandchildren
{{- end}}
`
