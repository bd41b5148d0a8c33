package job

import (
	"bytes"
	"context"
	"fmt"

	yaml "gopkg.in/yaml.v3"

	"tprint/layout"
	"tprint/paginate"
)

const (
	chainReportName  = "chain.yaml"
	layoutReportName = "layout.txt"
)

type spanDump struct {
	From [2]int `yaml:"from,flow"`
	To   [2]int `yaml:"to,flow"`
}

type regionDump struct {
	ID       int        `yaml:"id"`
	Kind     string     `yaml:"kind"`
	Page     int        `yaml:"page"`
	Row      int        `yaml:"row"`
	Bounds   [4]float64 `yaml:"bounds,flow"`
	Target   int        `yaml:"target"`
	Incoming int        `yaml:"incoming"`
	// block and offset pairs, end is exclusive
	Content *spanDump `yaml:"content,omitempty"`
}

type chainDump struct {
	Name       string       `yaml:"name"`
	Generation uint32       `yaml:"generation"`
	Display    string       `yaml:"display"`
	Pages      int          `yaml:"pages"`
	Regions    []regionDump `yaml:"regions"`
}

// DumpChain describes flow chain of the current session together with the
// content each region received. Dump is added to debug report when one is
// requested.
func (j *Job) DumpChain(ctx context.Context) ([]byte, error) {
	var data []byte
	err := j.render.Do(ctx, func() error {
		s := j.doc.Session()
		if s == nil {
			return paginate.ErrNotPaginated
		}
		d := chainDump{
			Name:       j.name,
			Generation: s.Generation(),
			Display:    s.Mode().String(),
			Pages:      s.Len(),
		}
		for _, r := range s.Chain().Regions() {
			rd := regionDump{
				ID:       int(r.ID),
				Kind:     r.Kind.String(),
				Page:     r.Page,
				Row:      r.Row,
				Bounds:   [4]float64{r.Bounds.X, r.Bounds.Y, r.Bounds.Width, r.Bounds.Height},
				Target:   int(r.Target),
				Incoming: int(r.Incoming),
			}
			if sb, so, eb, eo, ok := j.surface.Span(r.ID); ok {
				rd.Content = &spanDump{From: [2]int{sb, so}, To: [2]int{eb, eo}}
			}
			d.Regions = append(d.Regions, rd)
		}

		var err error
		if data, err = yaml.Marshal(d); err != nil {
			return fmt.Errorf("unable to marshal flow chain: %w", err)
		}
		// report is only touched from render thread
		j.env.Rpt.StoreData(chainReportName, data)
		return nil
	})
	return data, err
}

// DumpLayout describes what was placed on every page of the current session
// and adds description to debug report.
func (j *Job) DumpLayout(ctx context.Context) ([]byte, error) {
	buf := new(bytes.Buffer)
	err := j.render.Do(ctx, func() error {
		s := j.doc.Session()
		if s == nil {
			return paginate.ErrNotPaginated
		}
		if err := layout.Describe(buf, s.Pages(), s.Chain()); err != nil {
			return fmt.Errorf("unable to describe layout: %w", err)
		}
		j.env.Rpt.StoreData(layoutReportName, buf.Bytes())
		return nil
	})
	return buf.Bytes(), err
}
