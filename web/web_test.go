package web

import (
	"html/template"
	"io/fs"
	"testing"
)

func TestEmbeddedTemplatesExist(t *testing.T) {
	templatesFS := GetTemplatesFS()

	for _, file := range []string{"operator.html", "login.html"} {
		if _, err := fs.Stat(templatesFS, file); err != nil {
			t.Errorf("required template %q not found: %v", file, err)
		}
	}
}

func TestEmbeddedStaticFilesExist(t *testing.T) {
	staticFS := GetStaticFS()

	for _, file := range []string{"css/app.css", "js/app.js"} {
		if _, err := fs.Stat(staticFS, file); err != nil {
			t.Errorf("required static file %q not found: %v", file, err)
		}
	}
}

func TestTemplatesParse(t *testing.T) {
	templatesFS := GetTemplatesFS()

	for _, file := range []string{"operator.html", "login.html"} {
		if _, err := template.ParseFS(templatesFS, file); err != nil {
			t.Errorf("parse %q: %v", file, err)
		}
	}
}

func TestStaticFilesReadable(t *testing.T) {
	content, err := fs.ReadFile(GetStaticFS(), "js/app.js")
	if err != nil {
		t.Fatalf("failed to read js/app.js: %v", err)
	}
	if len(content) == 0 {
		t.Error("js/app.js is empty")
	}
}
