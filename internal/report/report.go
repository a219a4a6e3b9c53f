// Package report assembles the final .docx document from analysis
// results, test outcomes, diagrams, student metadata and a formatting
// profile. Sections are emitted strictly in the order the profile
// declares; failures upstream (compile errors, missing diagrams) are
// rendered as explanatory prose, never as an aborted document.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"baliance.com/gooxml/color"
	"baliance.com/gooxml/common"
	"baliance.com/gooxml/document"
	"baliance.com/gooxml/measurement"
	"baliance.com/gooxml/schema/soo/wml"

	"github.com/codelab-tools/labgen/internal/analysis"
	"github.com/codelab-tools/labgen/internal/executor"
	"github.com/codelab-tools/labgen/internal/profile"
)

// StudentInfo is the metadata printed on the title page.
type StudentInfo struct {
	Name    string
	Group   string
	Variant string
}

// Task pairs the analysis of one additional source file with its
// optional raster diagram.
type Task struct {
	Analysis    *analysis.Result
	DiagramPath string
}

// Options carries everything the assembler consumes.
type Options struct {
	Analysis       *analysis.Result
	TestReport     *executor.RunReport // nil when no test data was supplied
	DiagramPath    string              // raster diagram for the primary file, may be empty
	Student        StudentInfo
	Profile        profile.Profile
	ExtraTasks     []Task
	TitleOverrides map[string]string // per-field title page overrides
	OutputPath     string            // empty selects DefaultOutputPath
}

// DefaultOutputPath derives the report path for a source file name:
// reports/report_<base>.docx.
func DefaultOutputPath(filename string) string {
	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	return filepath.Join("reports", "report_"+base+".docx")
}

type assembler struct {
	doc    *document.Document
	prof   profile.Profile
	opts   Options
	figure int
	tables int
}

// Generate builds the document and writes it to the resolved output
// path, creating parent directories as needed. Returns the absolute
// path written.
func Generate(opts Options) (string, error) {
	if opts.Analysis == nil {
		return "", fmt.Errorf("report: analysis result is required")
	}

	a := &assembler{doc: document.New(), prof: opts.Profile, opts: opts}
	a.applyPageSetup()

	for _, section := range opts.Profile.Sections {
		switch section {
		case "title_page":
			a.addTitlePage()
		case "purpose":
			a.addPurpose()
		case "flowchart":
			a.addFlowcharts()
		case "listing":
			a.addListings()
		case "test_results":
			a.addTestResults()
		case "conclusion":
			a.addConclusion()
		}
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = DefaultOutputPath(opts.Analysis.Filename)
	}
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("resolve output path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	if err := a.doc.SaveToFile(abs); err != nil {
		return "", fmt.Errorf("save report %s: %w", abs, err)
	}
	return abs, nil
}

func (a *assembler) applyPageSetup() {
	m := a.prof.Margins
	a.doc.BodySection().SetPageMargins(
		measurement.Distance(m.TopCm)*measurement.Centimeter,
		measurement.Distance(m.RightCm)*measurement.Centimeter,
		measurement.Distance(m.BottomCm)*measurement.Centimeter,
		measurement.Distance(m.LeftCm)*measurement.Centimeter,
		1.25*measurement.Centimeter,
		1.25*measurement.Centimeter,
		0)

	if a.prof.PageNumbers {
		ftr := a.doc.AddFooter()
		p := ftr.AddParagraph()
		p.Properties().SetAlignment(wml.ST_JcCenter)
		p.AddRun().AddField(document.FieldCurrentPage)
		a.doc.BodySection().SetFooter(ftr, wml.ST_HdrFtrDefault)
	}
}

// paragraph starts a body paragraph with the profile's line spacing.
func (a *assembler) paragraph(align wml.ST_Jc) document.Paragraph {
	p := a.doc.AddParagraph()
	if align != wml.ST_JcUnset {
		p.Properties().SetAlignment(align)
	}
	if a.prof.LineSpacing > 0 {
		p.Properties().Spacing().SetLineSpacing(
			measurement.Distance(a.prof.LineSpacing*240)*measurement.Twips,
			wml.ST_LineSpacingRuleAuto)
	}
	return p
}

// bodyRun appends text in the profile's body font.
func (a *assembler) bodyRun(p document.Paragraph, text string) document.Run {
	return a.styledRun(p, text, a.prof.FontSize)
}

func (a *assembler) styledRun(p document.Paragraph, text string, size int) document.Run {
	r := p.AddRun()
	r.Properties().SetFontFamily(a.prof.FontName)
	r.Properties().SetSize(measurement.Distance(size) * measurement.Point)
	r.AddText(text)
	return r
}

func (a *assembler) bodyText(text string) {
	a.bodyRun(a.paragraph(wml.ST_JcUnset), text)
}

func (a *assembler) heading(title string) {
	p := a.doc.AddParagraph()
	p.Properties().Spacing().SetBefore(12 * measurement.Point)
	p.Properties().Spacing().SetAfter(6 * measurement.Point)
	r := p.AddRun()
	r.Properties().SetFontFamily(a.prof.FontName)
	r.Properties().SetSize(measurement.Distance(a.prof.FontSize+2) * measurement.Point)
	r.Properties().SetBold(true)
	r.AddText(title)
}

func (a *assembler) caption(text string) {
	p := a.paragraph(wml.ST_JcCenter)
	r := a.styledRun(p, text, a.prof.FontSize-2)
	r.Properties().SetItalic(true)
}

func (a *assembler) blankLines(n int) {
	for i := 0; i < n; i++ {
		a.doc.AddParagraph()
	}
}

func (a *assembler) titleField(field, fallback string) string {
	if v, ok := a.opts.TitleOverrides[field]; ok && v != "" {
		return v
	}
	return fallback
}

func taskLabel(res *analysis.Result) string {
	if res.TaskLabel != "" {
		return res.TaskLabel
	}
	return res.Filename
}

func (a *assembler) addTitlePage() {
	tp := a.prof.TitlePage

	for _, value := range []string{
		a.titleField("university", tp.University),
		a.titleField("faculty", tp.Faculty),
		a.titleField("department", tp.Department),
	} {
		if value != "" {
			a.bodyRun(a.paragraph(wml.ST_JcCenter), value)
		}
	}

	a.blankLines(4)

	p := a.paragraph(wml.ST_JcCenter)
	r := a.styledRun(p, a.titleField("work_type", tp.WorkType), a.prof.FontSize+4)
	r.Properties().SetBold(true)

	discipline := a.titleField("discipline", tp.Discipline)
	a.bodyRun(a.paragraph(wml.ST_JcCenter), fmt.Sprintf("in the discipline %q", discipline))

	if a.opts.Student.Variant != "" {
		a.bodyRun(a.paragraph(wml.ST_JcCenter), "Variant "+a.opts.Student.Variant)
	}

	a.blankLines(4)

	name := a.opts.Student.Name
	if name == "" {
		name = "Student"
	}
	a.bodyRun(a.paragraph(wml.ST_JcRight), "Performed by: "+name)
	if a.opts.Student.Group != "" {
		a.bodyRun(a.paragraph(wml.ST_JcRight), "Group: "+a.opts.Student.Group)
	}

	a.blankLines(3)
	a.bodyRun(a.paragraph(wml.ST_JcCenter), fmt.Sprintf("%d", time.Now().Year()))

	br := a.doc.AddParagraph().AddRun()
	ic := wml.NewEG_RunInnerContent()
	ic.Br = wml.NewCT_Br()
	ic.Br.TypeAttr = wml.ST_BrTypePage
	br.X().EG_RunInnerContent = append(br.X().EG_RunInnerContent, ic)
}

func (a *assembler) addPurpose() {
	a.heading("Objective")
	a.purposeBlock(a.opts.Analysis, "")
	for _, task := range a.opts.ExtraTasks {
		a.purposeBlock(task.Analysis, taskLabel(task.Analysis))
	}
}

func (a *assembler) purposeBlock(res *analysis.Result, label string) {
	if label != "" {
		r := a.bodyRun(a.paragraph(wml.ST_JcUnset), label)
		r.Properties().SetBold(true)
	}
	a.bodyText(res.Purpose)
	if len(res.Algorithms) > 0 {
		a.bodyText(fmt.Sprintf("Algorithmic concepts used: %s.", strings.Join(res.Algorithms, ", ")))
	}
	a.bodyText(fmt.Sprintf("Programming language: %s.", res.LanguageDisplay))
}

func (a *assembler) addFlowcharts() {
	a.heading("Algorithm flowchart")
	a.diagramBlock(a.opts.DiagramPath)
	for _, task := range a.opts.ExtraTasks {
		r := a.bodyRun(a.paragraph(wml.ST_JcUnset), taskLabel(task.Analysis))
		r.Properties().SetBold(true)
		a.diagramBlock(task.DiagramPath)
	}
}

func (a *assembler) diagramBlock(path string) {
	if path != "" {
		if a.embedImage(path) {
			a.figure++
			a.caption(fmt.Sprintf("Fig. %d. Algorithm flowchart", a.figure))
			return
		}
	}
	a.bodyText("The flowchart was not generated. Make sure Graphviz is installed on the system.")
}

func (a *assembler) embedImage(path string) bool {
	img, err := common.ImageFromFile(path)
	if err != nil {
		return false
	}
	ref, err := a.doc.AddImage(img)
	if err != nil {
		return false
	}
	p := a.paragraph(wml.ST_JcCenter)
	inline, err := p.AddRun().AddDrawingInline(ref)
	if err != nil {
		return false
	}

	width := measurement.Distance(15 * measurement.Centimeter)
	height := width
	if img.Size.X > 0 {
		height = measurement.Distance(float64(width) * float64(img.Size.Y) / float64(img.Size.X))
	}
	inline.SetSize(width, height)
	return true
}

func (a *assembler) addListings() {
	a.heading("Program listing")
	a.listingBlock(a.opts.Analysis)
	for _, task := range a.opts.ExtraTasks {
		a.listingBlock(task.Analysis)
	}
}

func (a *assembler) listingBlock(res *analysis.Result) {
	r := a.bodyRun(a.paragraph(wml.ST_JcUnset), "File: "+res.Filename)
	r.Properties().SetItalic(true)

	p := a.doc.AddParagraph()
	p.Properties().Spacing().SetBefore(6 * measurement.Point)
	p.Properties().Spacing().SetAfter(6 * measurement.Point)

	for _, lr := range tokenizeListing(res.Code, res.Language) {
		for i, segment := range strings.Split(lr.text, "\n") {
			if i > 0 {
				p.AddRun().AddBreak()
			}
			if segment == "" {
				continue
			}
			run := p.AddRun()
			run.Properties().SetFontFamily(a.prof.CodeFontName)
			run.Properties().SetSize(measurement.Distance(a.prof.CodeFontSize) * measurement.Point)
			run.Properties().SetColor(lr.style.color)
			if lr.style.bold {
				run.Properties().SetBold(true)
			}
			run.AddText(segment)
		}
	}
}

func (a *assembler) addTestResults() {
	a.heading("Test results")

	tr := a.opts.TestReport
	if tr == nil {
		a.bodyText("The program was not executed. No test data was supplied.")
		return
	}
	if !tr.Compiled {
		msg := "The program was not executed."
		if tr.CompileError != "" {
			msg += " Compilation error: " + tr.CompileError
		}
		a.bodyText(msg)
		return
	}
	if len(tr.Results) == 0 {
		a.bodyText("No test data was supplied.")
		return
	}

	table := a.doc.AddTable()
	table.Properties().SetWidthPercent(100)
	table.Properties().Borders().SetAll(wml.ST_BorderSingle, color.Auto, 0.5*measurement.Point)

	header := table.AddRow()
	for _, title := range []string{"Test #", "Input", "Output", "Status"} {
		a.cellText(header.AddCell(), title, true, true)
	}

	for _, result := range tr.Results {
		row := table.AddRow()
		a.cellText(row.AddCell(), fmt.Sprintf("%d", result.TestNumber), false, false)
		a.cellText(row.AddCell(), orPlaceholder(result.Input, "(none)"), false, false)
		a.cellText(row.AddCell(), orPlaceholder(result.Stdout, "(no output)"), false, false)
		a.cellText(row.AddCell(), runStatus(result), false, false)
	}

	a.tables++
	a.caption(fmt.Sprintf("Table %d. Program test results", a.tables))
}

func (a *assembler) cellText(cell document.Cell, text string, bold, center bool) {
	p := cell.AddParagraph()
	if center {
		p.Properties().SetAlignment(wml.ST_JcCenter)
	}
	r := p.AddRun()
	r.Properties().SetFontFamily(a.prof.FontName)
	r.Properties().SetSize(measurement.Distance(a.prof.FontSize-2) * measurement.Point)
	if bold {
		r.Properties().SetBold(true)
	}
	r.AddText(text)
}

func orPlaceholder(s, placeholder string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return placeholder
}

func runStatus(r executor.RunResult) string {
	switch {
	case r.Err != "":
		return "Error: " + r.Err
	case r.ReturnCode != 0:
		return "Execution error"
	default:
		return "Success"
	}
}

func (a *assembler) addConclusion() {
	a.heading("Conclusion")

	res := a.opts.Analysis
	var b strings.Builder
	fmt.Fprintf(&b, "In the course of the laboratory work, a program was developed in %s. ", res.LanguageDisplay)

	if len(res.Algorithms) > 0 {
		fmt.Fprintf(&b, "The implementation uses the following algorithmic concepts: %s. ",
			strings.Join(res.Algorithms, ", "))
	}

	if tr := a.opts.TestReport; tr != nil && tr.Compiled {
		total := len(tr.Results)
		success := 0
		for _, r := range tr.Results {
			if r.ReturnCode == 0 && r.Err == "" {
				success++
			}
		}
		fmt.Fprintf(&b, "The program was tested against %d input set(s); %d of %d tests passed. ",
			total, success, total)
	}

	b.WriteString("The objective of the work has been achieved.")
	a.bodyText(b.String())
}
