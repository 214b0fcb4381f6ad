/*
Package domdbg implements helpers to debug the logical and the composed tree.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>


*/
package domdbg

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"text/template"

	"github.com/npillmayer/shadytree/dom/w3cdom"
	tp "github.com/xlab/treeprint"
	"golang.org/x/net/html"
)

// Print returns a textual tree representation of the subtree under n,
// following whichever view n has been created with (see package w3cdom).
func Print(n w3cdom.Node) string {
	if n == nil {
		return "<empty>\n"
	}
	p := tp.New()
	ppt(p.AddBranch(label(n)), n)
	return p.String()
}

func ppt(p tp.Tree, n w3cdom.Node) {
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if !ch.HasChildNodes() {
			p.AddNode(label(ch))
			continue
		}
		branch := p.AddBranch(label(ch))
		ppt(branch, ch)
	}
}

func label(n w3cdom.Node) string {
	switch n.NodeType() {
	case html.TextNode:
		return fmt.Sprintf("%q", n.NodeValue())
	case html.CommentNode:
		return fmt.Sprintf("<!--%s-->", n.NodeValue())
	case html.ElementNode:
		var b strings.Builder
		b.WriteString(n.NodeName())
		attrs := n.Attributes()
		for i := 0; i < attrs.Length(); i++ {
			a := attrs.Item(i)
			fmt.Fprintf(&b, " %s=%q", a.Key(), a.Value())
		}
		return b.String()
	}
	return n.NodeName()
}

// Parameters for GraphViz drawing.
type graphParamsType struct {
	Fontname string
	Title    string
	NodeTmpl *template.Template
	EdgeTmpl *template.Template
}

// ToGraphViz outputs a diagram for a tree. The diagram is in
// GraphViz (DOT) format. Clients have to provide the root node of
// the (sub-)tree in the view they are interested in, and a Writer.
func ToGraphViz(root w3cdom.Node, title string, w io.Writer) {
	tmpl, err := template.New("dom").Parse(graphHeadTmpl)
	if err != nil {
		panic(err)
	}
	gparams := graphParamsType{Fontname: "Helvetica", Title: title}
	gparams.NodeTmpl, _ = template.New("domnode").Funcs(
		template.FuncMap{
			"label": label,
		}).Parse(domNodeTmpl)
	gparams.EdgeTmpl = template.Must(template.New("domedge").Parse(domEdgeTmpl))
	err = tmpl.Execute(w, gparams)
	if err != nil {
		panic(err)
	}
	dict := make(map[w3cdom.Node]string, 256)
	nodes(root, w, dict, &gparams)
	w.Write([]byte("}\n"))
}

// Dotty is a helper for testing. Given a node and a testing.T, it will
// create a Graphiviz image of the tree under `root` and write it to
// a file in the current folder, choosing a unique file name.
// The image is in SVG format.
//
// If an error occurs, t.Error(…) will be set, causing the test to fail.
//
func Dotty(root w3cdom.Node, t *testing.T) {
	tmpfile, err := os.CreateTemp(".", "dom.*.dot")
	if err != nil {
		t.Error(err)
		return
	}
	defer func() {
		tmpfile.Close()
		os.Remove(tmpfile.Name()) // clean up
	}()
	t.Logf("writing DOM digraph to %s\n", tmpfile.Name())
	ToGraphViz(root, t.Name(), tmpfile)
	outOption := fmt.Sprintf("-o%s.svg", tmpfile.Name())
	cmd := exec.Command("dot", "-Tsvg", outOption, tmpfile.Name())
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	t.Logf("writing DOM tree image to %s.svg\n", tmpfile.Name())
	if err := cmd.Run(); err != nil {
		t.Error(err.Error())
	}
}

type node struct {
	N    w3cdom.Node
	Name string
}

func nodes(n w3cdom.Node, w io.Writer, dict map[w3cdom.Node]string, gparams *graphParamsType) {
	domNode(n, w, dict, gparams)
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		nodes(ch, w, dict, gparams)
		domEdge(n, ch, w, dict, gparams)
	}
}

func domNode(n w3cdom.Node, w io.Writer, dict map[w3cdom.Node]string, gparams *graphParamsType) {
	name := dict[n]
	if name == "" {
		l := len(dict) + 1
		name = fmt.Sprintf("node%05d", l)
		dict[n] = name
	}
	if err := gparams.NodeTmpl.Execute(w, &node{n, name}); err != nil {
		panic(err)
	}
}

type edge struct {
	N1, N2 node
}

func domEdge(n1 w3cdom.Node, n2 w3cdom.Node, w io.Writer, dict map[w3cdom.Node]string,
	gparams *graphParamsType) {
	//
	e := edge{node{n1, dict[n1]}, node{n2, dict[n2]}}
	if err := gparams.EdgeTmpl.Execute(w, e); err != nil {
		panic(err)
	}
}

// --- Templates --------------------------------------------------------

const graphHeadTmpl = `digraph g {
  graph [labelloc="t" label={{ printf "%q" .Title }} splines=true overlap=false rankdir = "LR"];
  graph [fontname = "{{ .Fontname }}" fontsize=14] ;
   node [fontname = "{{ .Fontname }}" fontsize=14] ;
   edge [fontname = "{{ .Fontname }}" fontsize=14] ;
`

const domNodeTmpl = `{{ if eq .N.NodeName "#text" }}
{{ .Name }}	[ label={{ label .N | printf "%q" }} shape=box style=filled fillcolor=grey95 fontname="Courier" fontsize=11.0 ] ;
{{ else if eq .N.NodeName "slot" }}
{{ .Name }}	[ label={{ label .N | printf "%q" }} shape=hexagon style=filled fillcolor=khaki ] ;
{{ else }}
{{ .Name }}	[ label={{ label .N | printf "%q" }} shape=ellipse style=filled fillcolor=lightblue3 ] ;
{{ end }}
`

const domEdgeTmpl = `{{ .N1.Name }} -> {{ .N2.Name }} [weight=1] ;
`
