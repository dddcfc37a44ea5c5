// Package stats counts events over a single decode run: chunks seen
// by tag, bytes inflated, passes deinterlaced. It generalizes a
// struct-tag-driven Register/Add/Count surface (reflect over a
// struct of Unit fields, naming each from a struct tag), stripped of
// a rolling time-windowed-average machinery: the surrounding decode
// operations are synchronous and run to completion in one pass, so
// there is no periodic window to roll over, just a running total to
// report at the end of a run.
package stats

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

// Counter is one named running total. Register finds these by struct
// tag; callers should not construct one directly.
type Counter struct {
	title string
	total int
	count int
}

// Add accumulates v into the counter and bumps its sample count.
func (c *Counter) Add(v int) {
	c.total += v
	c.count++
}

// Count is shorthand for Add(1): one occurrence.
func (c *Counter) Count() { c.Add(1) }

// Total is the running sum of every value passed to Add.
func (c *Counter) Total() int { return c.total }

// Samples is how many times Add has been called.
func (c *Counter) Samples() int { return c.count }

// Sheet is a named group of counters, as registered together by
// Register.
type Sheet struct {
	title string
	data  []*Counter
}

// Report collects sheets registered via Register and renders a final
// summary at the end of a run.
type Report struct {
	sheets []*Sheet
}

// Register adds the Counter-typed fields of units (a pointer to a
// struct) to a named sheet, naming each counter from its `stat`
// struct tag. Calling Register twice with the same sheet title and
// the same first field is a no-op.
func (r *Report) Register(title string, units interface{}) {
	var sh *Sheet
	for _, s := range r.sheets {
		if s.title == title {
			sh = s
			break
		}
	}
	if sh == nil {
		sh = &Sheet{title: title}
		r.sheets = append(r.sheets, sh)
	}

	v := reflect.ValueOf(units).Elem()
	for i := 0; i < v.NumField(); i++ {
		c := v.Field(i).Addr().Interface().(*Counter)
		if i == 0 && len(sh.data) > 0 && sh.data[0] == c {
			return
		}
		c.title = v.Type().Field(i).Tag.Get("stat")
		if c.title == "" {
			c.title = v.Type().Field(i).Name
		}
		sh.data = append(sh.data, c)
	}
}

// String renders every sheet as a plain-text table, sheets and
// counters within them in registration order.
func (r *Report) String() string {
	var b strings.Builder
	for _, s := range r.sheets {
		fmt.Fprintf(&b, "%s\n", s.title)
		for _, c := range s.data {
			fmt.Fprintf(&b, "  %-20s total=%-10d samples=%d\n", c.title, c.total, c.count)
		}
	}
	return b.String()
}

// ByTag counts chunk occurrences keyed by their four-character tag, a
// shape Register's reflection-over-struct-fields approach can't cover
// since the tag set is discovered at run time rather than fixed by a
// struct's field list.
type ByTag struct {
	counts map[string]int
}

// Count records one occurrence of tag.
func (b *ByTag) Count(tag string) {
	if b.counts == nil {
		b.counts = make(map[string]int)
	}
	b.counts[tag]++
}

// String renders tag counts sorted by tag for deterministic output.
func (b *ByTag) String() string {
	tags := make([]string, 0, len(b.counts))
	for t := range b.counts {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	var sb strings.Builder
	for _, t := range tags {
		fmt.Fprintf(&sb, "  %-8s %d\n", t, b.counts[t])
	}
	return sb.String()
}
