// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"log"
	"net/http"

	"github.com/google/safehtml/template"
)

var viewerPage = template.Must(template.New("viewer").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>lockplot</title>
</head>
<body>
<h1>{{.Title}}</h1>
<img src="/chart.svg" alt="{{.Title}}">
{{if .Table}}<pre>{{.Table}}</pre>{{end}}
</body>
</html>
`))

type viewerData struct {
	Title string
	Table string
}

// newViewer returns a handler serving a page that shows the SVG chart
// and, if non-empty, its data table.
func newViewer(title string, svg []byte, table string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		var buf bytes.Buffer
		if err := viewerPage.Execute(&buf, viewerData{Title: title, Table: table}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	})
	mux.HandleFunc("/chart.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write(svg)
	})
	return mux
}

func serve(addr string, h http.Handler, l *log.Logger) error {
	l.Printf("Listening on %s", addr)
	return http.ListenAndServe(addr, h)
}
