package mcts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
	"github.com/pkg/errors"
)

// ToDot renders the tree in the Graphviz dot language. Each node is labelled with its statistics.
func (t *Tree) ToDot() (string, error) {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		return "", errors.WithStack(err)
	}
	if err := g.SetDir(true); err != nil {
		return "", errors.WithStack(err)
	}

	var buf bytes.Buffer
	for i := range t.nodes {
		n := &t.nodes[i]
		if err := tmpl.Execute(&buf, n); err != nil {
			return "", errors.Wrapf(err, "unable to label node %d", n.id)
		}
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		buf.Reset()
		if err := g.AddNode("G", dotID(n.id), attrs); err != nil {
			return "", errors.WithStack(err)
		}
	}

	for i, kids := range t.children {
		for _, kid := range kids {
			if err := g.AddEdge(dotID(naughty(i)), dotID(kid), true, nil); err != nil {
				return "", errors.WithStack(err)
			}
		}
	}
	return g.String(), nil
}

func dotID(n naughty) string { return fmt.Sprintf("n%d", n) }

const tmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Node ID</TD><TD>{{.ID}}</TD></TR>
<TR><TD>Move</TD><TD>{{.Move}}</TD></TR>
<TR><TD>Just Moved</TD><TD>{{printf "%v" .JustMoved}}</TD></TR>
<TR><TD>Wins</TD><TD>{{.Wins}}</TD></TR>
<TR><TD>Visits</TD><TD>{{.Visits}}</TD></TR>
<TR><TD>Untried</TD><TD>{{.Untried}}</TD></TR>
</TABLE>
>`

var tmpl *template.Template

func init() {
	tmpl = template.Must(template.New("name").Parse(tmplRaw))
}
