package utils

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidFrame = errors.New("invalid ascii frame")

type AsciiFrameField struct {
	// Name of the field
	Name string

	// Units within the frame the field begins from
	Begin int

	// Field width
	Width int
}

// The last unit within the frame used by this field
func (f *AsciiFrameField) TopUnit() int {
	return f.PastTopUnit() - 1
}

// The first unit within the frame used by the next field
func (f *AsciiFrameField) PastTopUnit() int {
	return f.Begin + f.Width
}

type AsciiFrameUnitLayout uint

const (
	// Units increase left to right
	AsciiFrameUnitLayout_LeftToRight AsciiFrameUnitLayout = iota
	// Units increase right to left
	AsciiFrameUnitLayout_RightToLeft
)

type asciiFrame struct {
	fields     []AsciiFrameField
	frameWidth int
	unit       string
	leftpad    int
	layout     AsciiFrameUnitLayout
}

func (f *asciiFrame) TopUnit() int {
	return f.frameWidth - 1
}

// Writes text centered in a row of the given length, padding both sides with filler
func writeCentered(text string, decorationLength int, filler string, length int, builder *strings.Builder) {
	free := length - len(text) - decorationLength
	left := free / 2

	builder.WriteString(strings.Repeat(filler, left))
	builder.WriteString(text)
	builder.WriteString(strings.Repeat(filler, free-left))
}

type asciiFrameColumn struct {
	index     string
	name      string
	width     string
	minLength int
}

const (
	frameBodySplitter   = "|"
	frameBorderSplitter = "+"
	frameBorderBody     = "-"
	frameArrowTipLeft   = "<-"
	frameArrowBody      = "-"
	frameArrowTipRight  = "->"
	frameIndexBody      = " "
	frameArrowSplitter  = " "
)

func (f *asciiFrame) columns() []asciiFrameColumn {
	columns := make([]asciiFrameColumn, len(f.fields))

	for i := range columns {
		field := &f.fields[i]
		column := &columns[i]

		if f.layout == AsciiFrameUnitLayout_RightToLeft {
			field = &f.fields[len(f.fields)-i-1]
			column.index = fmt.Sprint(field.TopUnit())
		} else {
			column.index = fmt.Sprint(field.Begin)
		}

		column.name = fmt.Sprintf(" %v ", field.Name)
		column.width = fmt.Sprintf(" %v %v ", field.Width, f.unit)
		column.minLength = Max([]int{
			len(column.index),
			len(column.name),
			len(frameArrowTipLeft) + len(column.width) + len(frameArrowTipRight),
		})
	}

	return columns
}

func (f *asciiFrame) Draw() string {
	leftpad := strings.Repeat(" ", f.leftpad)

	var indices, header, body, footer, widths strings.Builder

	for _, row := range []*strings.Builder{&indices, &header, &body, &footer, &widths} {
		row.WriteString(leftpad)
	}

	for _, column := range f.columns() {
		indices.WriteString(column.index)
		indices.WriteString(strings.Repeat(frameIndexBody, column.minLength-len(column.index)+1))
		header.WriteString(frameBorderSplitter)
		header.WriteString(strings.Repeat(frameBorderBody, column.minLength))
		body.WriteString(frameBodySplitter)
		writeCentered(column.name, 0, " ", column.minLength, &body)
		footer.WriteString(frameBorderSplitter)
		footer.WriteString(strings.Repeat(frameBorderBody, column.minLength))
		widths.WriteString(frameArrowSplitter)
		widths.WriteString(frameArrowTipLeft)
		writeCentered(column.width, len(frameArrowTipLeft)+len(frameArrowTipRight), frameArrowBody, column.minLength, &widths)
		widths.WriteString(frameArrowTipRight)
	}

	if f.layout == AsciiFrameUnitLayout_LeftToRight {
		indices.WriteString(fmt.Sprint(f.TopUnit()))
	} else {
		indices.WriteString("0")
	}

	header.WriteString(frameBorderSplitter)
	body.WriteString(frameBodySplitter)
	footer.WriteString(frameBorderSplitter)
	widths.WriteString(" ")

	var result strings.Builder

	for _, row := range []*strings.Builder{&indices, &header, &body, &footer, &widths} {
		result.WriteString(row.String())
		result.WriteString("\n")
	}

	return result.String()
}

func fillAsciiFrameGaps(fields []AsciiFrameField, frameWidth int) ([]AsciiFrameField, error) {
	result := make([]AsciiFrameField, 0, len(fields))
	currentUnit := 0

	for _, field := range fields {
		if field.Width <= 0 {
			return nil, MakeError(ErrInvalidFrame, "field '%v' has non-positive width %v", field.Name, field.Width)
		}

		if field.Begin > currentUnit {
			result = append(result, AsciiFrameField{
				Name:  "(unused)",
				Begin: currentUnit,
				Width: field.Begin - currentUnit,
			})
		} else if field.Begin < currentUnit {
			return nil, MakeError(ErrInvalidFrame, "field '%v' begins at %v, overlapping the previous field (fields must be sorted by position)", field.Name, field.Begin)
		}

		result = append(result, field)

		currentUnit = field.PastTopUnit()
	}

	if currentUnit < frameWidth {
		result = append(result, AsciiFrameField{
			Name:  "(unused)",
			Begin: currentUnit,
			Width: frameWidth - currentUnit,
		})
	}

	return result, nil
}

// Prints an ascii diagram of a binary frame composed of contiguous fields of different unit lenghts
func AsciiFrame(fields []AsciiFrameField, frameWidth int, unit string, layout AsciiFrameUnitLayout, leftpad int) (string, error) {
	allFields, err := fillAsciiFrameGaps(fields, frameWidth)
	if err != nil {
		return "", err
	}

	if len(allFields) == 0 {
		return "", MakeError(ErrInvalidFrame, "empty frame")
	}

	frame := asciiFrame{
		fields:     allFields,
		frameWidth: allFields[len(allFields)-1].PastTopUnit(),
		unit:       unit,
		leftpad:    leftpad,
		layout:     layout,
	}

	return frame.Draw(), nil
}
