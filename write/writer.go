package write

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

type WriteSettings struct {
	DisplayWriters []Writer // Where the trace is written. Nil disables all output

	// DisplayInterval throttles Displayer writers: values are printed at most
	// once per interval. Zero prints every iteration.
	DisplayInterval time.Duration
}

// DefaultWriteSettings writes nothing. Callers opt in to a trace by adding
// writers.
func DefaultWriteSettings() *WriteSettings {
	return &WriteSettings{}
}

type Type int

const (
	// Logger is a writer intended to save details of the run for future
	// postprocessing. The data is saved as csv, one row per iteration
	Logger Type = iota

	// Displayer is a writer intended for human monitoring of the run.
	// Columns are aligned and output may be throttled
	Displayer
)

type Writer struct {
	io.Writer
	T Type
}

type Value struct {
	Value   interface{}
	Heading string
}

type DataAdder interface {
	AppendWriteData([]*Value) []*Value
}

const headingInterval = 30

// Display writes the values collected from its DataAdders at every iteration.
// Assumption is that headings don't change during a run
type Display struct {
	displayValues []*Value

	headings []string
	values   []string

	maxLengths []int

	lastHeadingDisplay int
	lastValueDisplay   time.Time
	interval           time.Duration

	existsDisplayer bool
	existsLogger    bool

	writers []Writer
	loggers map[int]*csv.Writer

	dataAdders []DataAdder
}

// accumulateValues gets all of the values from the data adders and stores
// them in display
func (d *Display) accumulateValues() {
	d.displayValues = d.displayValues[:0]
	for _, add := range d.dataAdders {
		d.displayValues = add.AppendWriteData(d.displayValues)
	}
}

func NewDisplay() *Display {
	return &Display{}
}

// AddDataAdder adds a DataAdder to the list of values to be printed/logged.
// This should only be called during initialization
func (d *Display) AddDataAdder(dataAdders ...DataAdder) {
	d.dataAdders = append(d.dataAdders, dataAdders...)
}

// Init initializes the displays for the writers according to their Type
func (d *Display) Init(w *WriteSettings) error {
	d.writers = w.DisplayWriters
	d.interval = w.DisplayInterval
	d.existsDisplayer = false
	d.existsLogger = false
	d.loggers = nil

	// headings and values are displayed on the first iteration
	d.lastHeadingDisplay = headingInterval + 1
	d.lastValueDisplay = time.Time{}

	if len(d.writers) == 0 {
		return nil
	}
	d.accumulateValues()

	d.headings = d.headings[:0]
	for _, dat := range d.displayValues {
		d.headings = append(d.headings, dat.Heading)
	}

	for i, w := range d.writers {
		switch w.T {
		default:
			return fmt.Errorf("display: unknown writer type %d", w.T)
		case Logger:
			d.existsLogger = true
			if d.loggers == nil {
				d.loggers = make(map[int]*csv.Writer)
			}
			cw := csv.NewWriter(w)
			d.loggers[i] = cw
			if err := writeRecord(cw, d.headings); err != nil {
				return err
			}
		case Displayer:
			d.existsDisplayer = true
			if _, err := io.WriteString(w, "Beginning root finding\n\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// Iterate is the write action performed by display at every iteration
// of the algorithm, as set by the values in the Writers and dataAdders which
// were set during initialization
func (d *Display) Iterate() error {
	if len(d.writers) == 0 {
		return nil
	}

	var displayValues bool
	var displayHeadings bool

	if d.existsDisplayer {
		displayValues = d.shouldDisplayValues()
		if displayValues {
			d.lastValueDisplay = time.Now()
			d.lastHeadingDisplay++
		}

		displayHeadings = displayValues && d.shouldDisplayHeadings()
		if displayHeadings {
			d.lastHeadingDisplay = 0
		}
	}

	// only accumulate values if needed
	if d.existsLogger || displayValues {
		d.accumulateValues()
		d.values = d.values[:0]
		for _, v := range d.displayValues {
			d.values = append(d.values, valueToString(v.Value))
		}
	}

	if displayValues {
		d.maxLengths = d.maxLengths[:0]
		for i, v := range d.values {
			l := len(v)
			if len(d.headings[i]) > l {
				l = len(d.headings[i])
			}
			d.maxLengths = append(d.maxLengths, l)
		}
	}

	for i, w := range d.writers {
		switch w.T {
		case Logger:
			if err := writeRecord(d.loggers[i], d.values); err != nil {
				return err
			}
		case Displayer:
			if displayHeadings {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
				if err := writeAlignedStrings(w, d.headings, d.maxLengths); err != nil {
					return err
				}
			}
			if displayValues {
				if err := writeAlignedStrings(w, d.values, d.maxLengths); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (d *Display) shouldDisplayValues() bool {
	// limit printing with really quick functions
	return d.interval <= 0 || time.Since(d.lastValueDisplay) > d.interval
}

func (d *Display) shouldDisplayHeadings() bool {
	// Display headings again after a certain number of value printings
	return d.lastHeadingDisplay > headingInterval
}

func writeRecord(w *csv.Writer, record []string) error {
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeAlignedStrings(w io.Writer, strs []string, maxLengths []int) error {
	var sb strings.Builder
	for i, str := range strs {
		sb.WriteString(str)
		sb.WriteString(strings.Repeat(" ", maxLengths[i]-len(str)))
		sb.WriteString("\t")
	}
	sb.WriteString("\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func valueToString(v interface{}) string {
	switch v := v.(type) {
	case int:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.9e", v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
