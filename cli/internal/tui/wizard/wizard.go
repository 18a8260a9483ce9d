// ABOUTME: Pool planning wizard as a bubbletea model
// ABOUTME: Uses huh forms with a step indicator to collect a plan request

package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/markalston/tenant-pool-sizer/backend/models"
	"github.com/markalston/tenant-pool-sizer/backend/services"
	"github.com/markalston/tenant-pool-sizer/cli/internal/tui/styles"
)

// ErrCancelled is returned by Run when the operator leaves the wizard
var ErrCancelled = errors.New("wizard cancelled")

// WizardCompleteMsg is sent when the wizard finishes successfully
type WizardCompleteMsg struct {
	Request *models.PlanRequest
}

// WizardCancelledMsg is sent when the wizard is cancelled
type WizardCancelledMsg struct{}

// ParityFunc lists the parity levels valid for a layout
type ParityFunc func(nodes, drivesPerNode int) ([]string, error)

// Wizard manages the pool planning flow as a bubbletea model
type Wizard struct {
	request *models.PlanRequest
	parity  ParityFunc
	form    *huh.Form
	step    int
	width   int

	// Form field values (strings for huh)
	poolName      string
	capacityValue string
	capacityUnit  string
	nodes         string
	drives        string
	erasureCode   string
	storageClass  string
	memoryGi      string
	availableGi   string

	parityOptions []string
}

// Step names for progress indicator
var stepNames = []string{"Capacity", "Layout", "Protection & Memory"}

var cancelKey = key.NewBinding(
	key.WithKeys("esc", "ctrl+c"),
	key.WithHelp("esc", "cancel"),
)

var unitOptions = []huh.Option[string]{
	huh.NewOption("GiB", "Gi"),
	huh.NewOption("TiB", "Ti"),
	huh.NewOption("PiB", "Pi"),
}

// New creates a wizard seeded from req. A nil req starts from defaults.
func New(req *models.PlanRequest, parity ParityFunc) *Wizard {
	if req == nil {
		req = &models.PlanRequest{}
	}
	if req.Capacity.Value == "" {
		req.Capacity = models.Capacity{Value: "1", Unit: "Ti"}
	}
	if req.Nodes == 0 {
		req.Nodes = services.MinNodes
	}
	if req.DrivesPerServer == 0 {
		req.DrivesPerServer = 4
	}
	if parity == nil {
		parity = services.ParityLevels
	}

	w := &Wizard{
		request:       req,
		parity:        parity,
		step:          1,
		poolName:      req.PoolName,
		capacityValue: req.Capacity.Value,
		capacityUnit:  req.Capacity.Unit,
		nodes:         strconv.Itoa(req.Nodes),
		drives:        strconv.Itoa(req.DrivesPerServer),
		erasureCode:   req.ErasureCode,
		storageClass:  req.StorageClass,
	}
	if req.MemoryGi > 0 {
		w.memoryGi = strconv.FormatFloat(req.MemoryGi, 'f', -1, 64)
	}
	if req.MaxAvailableMemoryBytes > 0 {
		w.availableGi = strconv.FormatFloat(float64(req.MaxAvailableMemoryBytes)/float64(services.GiB), 'f', -1, 64)
	}

	w.form = w.createStep1Form()
	return w
}

func (w *Wizard) createStep1Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Pool name").
				Description("Lowercase letters, digits and dashes; empty for " + services.DefaultPoolName).
				Value(&w.poolName).
				Validate(services.ValidatePoolName),
			huh.NewInput().
				Title("Raw pool capacity").
				Placeholder("e.g., 7500").
				Value(&w.capacityValue).
				Validate(validatePositiveFloat),
			huh.NewSelect[string]().
				Title("Unit").
				Options(unitOptions...).
				Value(&w.capacityUnit),
		).Title("Step 1: Capacity").
			Description("How much storage should the pool hold?"),
	)
}

func (w *Wizard) createStep2Form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Servers").
				Description(fmt.Sprintf("At least %d", services.MinNodes)).
				CharLimit(4).
				Value(&w.nodes).
				Validate(validateMinInt(services.MinNodes)),
			huh.NewInput().
				Title("Drives per server").
				CharLimit(4).
				Value(&w.drives).
				Validate(validateMinInt(1)),
		).Title("Step 2: Layout").
			Description("How is the pool spread over servers?"),
	)
}

func (w *Wizard) createStep3Form() *huh.Form {
	options := make([]huh.Option[string], 0, len(w.parityOptions))
	for _, level := range w.parityOptions {
		label := level
		if level == services.DefaultErasureCode {
			label += " (recommended)"
		}
		options = append(options, huh.NewOption(label, level))
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Storage class").
			Description("Empty for the cluster default").
			Value(&w.storageClass).
			Validate(services.ValidateStorageClass),
		huh.NewInput().
			Title("Memory per server (Gi)").
			Description("Empty to skip memory sizing").
			Value(&w.memoryGi).
			Validate(validateOptionalFloat),
		huh.NewInput().
			Title("Memory available per server (Gi)").
			Value(&w.availableGi).
			Validate(validateOptionalFloat),
	}
	if len(options) > 0 {
		fields = append([]huh.Field{
			huh.NewSelect[string]().
				Title("Erasure code parity").
				Description("Higher parity survives more drive failures").
				Options(options...).
				Value(&w.erasureCode),
		}, fields...)
	}

	return huh.NewForm(
		huh.NewGroup(fields...).
			Title("Step 3: Protection & Memory").
			Description("Choose parity and optional memory sizing"),
	)
}

// Init implements tea.Model
func (w *Wizard) Init() tea.Cmd {
	return w.form.Init()
}

// Update implements tea.Model
func (w *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w.width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, cancelKey) {
			return w, func() tea.Msg { return WizardCancelledMsg{} }
		}
	}

	// Update the current form
	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	// Check if form is complete
	if w.form.State == huh.StateCompleted {
		return w.advanceStep()
	}

	return w, cmd
}

func (w *Wizard) advanceStep() (tea.Model, tea.Cmd) {
	switch w.step {
	case 1:
		w.request.PoolName = w.poolName
		w.request.Capacity = models.Capacity{Value: w.capacityValue, Unit: w.capacityUnit}
		w.step = 2
		w.form = w.createStep2Form()
		return w, w.form.Init()

	case 2:
		w.request.Nodes, _ = strconv.Atoi(w.nodes)
		w.request.DrivesPerServer, _ = strconv.Atoi(w.drives)
		// An empty catalog still lets the planner report why
		w.parityOptions, _ = w.parity(w.request.Nodes, w.request.DrivesPerServer)
		if w.erasureCode == "" || !contains(w.parityOptions, w.erasureCode) {
			w.erasureCode = defaultOption(w.parityOptions)
		}
		w.step = 3
		w.form = w.createStep3Form()
		return w, w.form.Init()

	case 3:
		w.applyStep3()
		return w, func() tea.Msg {
			return WizardCompleteMsg{Request: w.request}
		}
	}

	return w, nil
}

func (w *Wizard) applyStep3() {
	w.request.ErasureCode = w.erasureCode
	w.request.StorageClass = w.storageClass
	w.request.MemoryGi, _ = strconv.ParseFloat(w.memoryGi, 64)
	if available, err := strconv.ParseFloat(w.availableGi, 64); err == nil && available > 0 {
		w.request.MaxAvailableMemoryBytes = uint64(available * float64(services.GiB))
	}
}

// View implements tea.Model
func (w *Wizard) View() string {
	var sb strings.Builder

	sb.WriteString(w.renderProgress())
	sb.WriteString("\n\n")
	sb.WriteString(w.form.View())
	sb.WriteString("\n")
	help := cancelKey.Help()
	sb.WriteString(styles.Label.Render(help.Key + " " + help.Desc))

	return sb.String()
}

// renderProgress renders the step indicator line
func (w *Wizard) renderProgress() string {
	var steps []string
	for i, name := range stepNames {
		stepNum := i + 1
		var indicator string
		var nameStyle lipgloss.Style

		switch {
		case stepNum < w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Secondary).Render("✓")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		case stepNum == w.step:
			indicator = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true).Render("●")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
		default:
			indicator = lipgloss.NewStyle().Foreground(styles.Muted).Render("○")
			nameStyle = lipgloss.NewStyle().Foreground(styles.Muted)
		}

		steps = append(steps, fmt.Sprintf("%s %s", indicator, nameStyle.Render(name)))
	}

	return styles.Panel.Render(strings.Join(steps, "    "))
}

// GetRequest returns the collected plan request
func (w *Wizard) GetRequest() *models.PlanRequest {
	return w.request
}

// runner drives a Wizard as a standalone program
type runner struct {
	wizard    *Wizard
	request   *models.PlanRequest
	cancelled bool
}

func (r *runner) Init() tea.Cmd {
	return r.wizard.Init()
}

func (r *runner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case WizardCompleteMsg:
		r.request = msg.Request
		return r, tea.Quit
	case WizardCancelledMsg:
		r.cancelled = true
		return r, tea.Quit
	}
	_, cmd := r.wizard.Update(msg)
	return r, cmd
}

func (r *runner) View() string {
	if r.request != nil || r.cancelled {
		return ""
	}
	return r.wizard.View()
}

// Run shows the wizard full screen and returns the completed request.
func Run(w *Wizard, opts ...tea.ProgramOption) (*models.PlanRequest, error) {
	r := &runner{wizard: w}
	if _, err := tea.NewProgram(r, opts...).Run(); err != nil {
		return nil, err
	}
	if r.cancelled || r.request == nil {
		return nil, ErrCancelled
	}
	return r.request, nil
}

func contains(levels []string, level string) bool {
	for _, l := range levels {
		if l == level {
			return true
		}
	}
	return false
}

// defaultOption prefers the default erasure code, then the first level.
func defaultOption(levels []string) string {
	if contains(levels, services.DefaultErasureCode) {
		return services.DefaultErasureCode
	}
	if len(levels) > 0 {
		return levels[0]
	}
	return ""
}

func validatePositiveFloat(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateOptionalFloat(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validatePositiveFloat(s)
}

func validateMinInt(minimum int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || v < minimum {
			return fmt.Errorf("must be a whole number of at least %d", minimum)
		}
		return nil
	}
}
