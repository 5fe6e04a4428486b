package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/osse101/modstanding/internal/catalog"
	"github.com/osse101/modstanding/internal/config"
	"github.com/osse101/modstanding/internal/domain"
	"github.com/osse101/modstanding/internal/event"
	"github.com/osse101/modstanding/internal/punishment"
	"github.com/osse101/modstanding/internal/standing"
	"github.com/osse101/modstanding/internal/validation"
)

const timeLayout = "2006-01-02 15:04 MST"

var errUsage = errors.New("missing argument, see 'standing help'")

// commonFlags are shared by the commands that evaluate records
type commonFlags struct {
	catalogPath string
	schemaDir   string
	at          string
	asJSON      bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.catalogPath, "catalog", "", "custom punishment types YAML")
	fs.StringVar(&c.schemaDir, "schemas", config.ConfigPathSchemaDir, "JSON schema directory")
	fs.StringVar(&c.at, "at", "", "evaluate as of this RFC3339 instant")
	fs.BoolVar(&c.asJSON, "json", false, "print JSON")
}

func (c *commonFlags) now() (time.Time, error) {
	if c.at == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, c.at)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --at value: %w", err)
	}
	return t, nil
}

// loadCatalog merges the built-in types with the optional custom catalog file
func (c *commonFlags) loadCatalog(v validation.SchemaValidator) (domain.Catalog, error) {
	cat := make(domain.Catalog)
	for _, t := range domain.BuiltinPunishmentTypes() {
		cat[t.Ordinal] = t
	}
	if c.catalogPath == "" {
		return cat, nil
	}
	custom, err := catalog.LoadFile(c.catalogPath, v, c.schemaDir)
	if err != nil {
		return nil, err
	}
	for _, t := range custom {
		if domain.IsReservedOrdinal(t.Ordinal) {
			continue
		}
		cat[t.Ordinal] = t
	}
	return cat, nil
}

func cmdEffective(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("effective", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errUsage
	}

	now, err := common.now()
	if err != nil {
		return err
	}
	v := validation.NewSchemaValidator()
	cat, err := common.loadCatalog(v)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	p, defects, err := punishment.NewIngestor(v, common.schemaDir).Normalize(raw)
	if err != nil {
		return err
	}

	view := punishment.BuildView(p, cat, now)
	defects = append(defects, view.Effective.Defects...)
	if common.asJSON {
		return writeJSON(out, punishment.Evaluation{View: view, Defects: defects})
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", p.ID)
	fmt.Fprintf(w, "PLAYER\t%s\n", p.PlayerID)
	fmt.Fprintf(w, "TYPE\t%s\n", view.TypeName)
	fmt.Fprintf(w, "STATE\t%s\n", view.State)
	fmt.Fprintf(w, "ACTIVE\t%t\n", view.Effective.Active)
	fmt.Fprintf(w, "DURATION\t%s\n", view.DurationLabel)
	fmt.Fprintf(w, "EXPIRES\t%s\n", formatExpiry(view.Effective.Expiry))
	fmt.Fprintf(w, "MODIFICATIONS\t%d\n", len(view.Effective.OrderedModifications))
	if err := w.Flush(); err != nil {
		return err
	}

	if len(view.Effective.OrderedModifications) > 0 {
		fmt.Fprintln(out)
		w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ISSUED\tTYPE\tDURATION\tBY")
		fmt.Fprintln(w, "------\t----\t--------\t--")
		for _, m := range view.Effective.OrderedModifications {
			dur := "-"
			if m.EffectiveDuration != nil {
				dur = punishment.FormatDuration(*m.EffectiveDuration)
			}
			issued := "-"
			if !m.IssuedAt.IsZero() {
				issued = m.IssuedAt.UTC().Format(timeLayout)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", issued, m.Type, dur, orDash(m.IssuerName))
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	return writeDefects(out, defects)
}

func cmdStatus(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	var common commonFlags
	common.register(fs)
	socialMedium := fs.Int("social-medium", config.DefaultThresholdMedium, "social Medium threshold")
	socialHabitual := fs.Int("social-habitual", config.DefaultThresholdHabitual, "social Habitual threshold")
	gameplayMedium := fs.Int("gameplay-medium", config.DefaultThresholdMedium, "gameplay Medium threshold")
	gameplayHabitual := fs.Int("gameplay-habitual", config.DefaultThresholdHabitual, "gameplay Habitual threshold")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errUsage
	}

	now, err := common.now()
	if err != nil {
		return err
	}
	v := validation.NewSchemaValidator()
	cat, err := common.loadCatalog(v)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	records, defects, err := punishment.NewIngestor(v, common.schemaDir).NormalizeBatch(raw)
	if err != nil {
		return err
	}

	thresholds := domain.StatusThresholds{
		Social:   domain.TierThresholds{Medium: *socialMedium, Habitual: *socialHabitual},
		Gameplay: domain.TierThresholds{Medium: *gameplayMedium, Habitual: *gameplayHabitual},
	}
	agg := standing.Aggregate(records, cat, thresholds, now)
	agg.Defects = append(defects, agg.Defects...)
	if common.asJSON {
		return writeJSON(out, agg)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tPOINTS\tSTATUS\tNEXT OFFENSE")
	fmt.Fprintln(w, "--------\t------\t------\t------------")
	for _, c := range []domain.Category{domain.CategorySocial, domain.CategoryGameplay} {
		status, points := standing.StatusFor(agg, c)
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", c, points, status, standing.OffenseTierFor(status))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d record(s), %d currently active, %d skipped with unknown type\n",
		len(records), agg.ActiveCount, agg.SkippedUnknownTypes)
	for _, warning := range agg.Warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
	return writeDefects(out, agg.Defects)
}

func cmdCatalog(args []string, out io.Writer) error {
	if len(args) < 1 || args[0] != "validate" {
		return errUsage
	}
	fs := flag.NewFlagSet("catalog validate", flag.ContinueOnError)
	schemaDir := fs.String("schemas", config.ConfigPathSchemaDir, "JSON schema directory")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	path := config.ConfigPathPunishmentTypes
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	types, err := catalog.LoadFile(path, validation.NewSchemaValidator(), *schemaDir)
	if err != nil {
		return err
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Ordinal < types[j].Ordinal })

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORDINAL\tNAME\tCATEGORY\tSEVERITIES\tNOTE")
	fmt.Fprintln(w, "-------\t----\t--------\t----------\t----")
	for _, t := range types {
		severities := "single"
		if !t.SingleSeverity {
			severities = "low/medium/high"
		}
		note := ""
		if domain.IsReservedOrdinal(t.Ordinal) {
			note = "reserved, ignored"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", t.Ordinal, t.Name, t.Category, severities, note)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s: %d type(s) OK\n", path, len(types))
	return nil
}

func cmdDeadLetters(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("deadletters", flag.ContinueOnError)
	path := fs.String("path", config.ConfigPathDeadLetter, "dead-letter file")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := event.ReadDeadLetters(*path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if *asJSON {
		return writeJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No dead-lettered events")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAILED AT\tTYPE\tPLAYER\tATTEMPTS\tLAST ERROR")
	fmt.Fprintln(w, "---------\t----\t------\t--------\t----------")
	for _, e := range entries {
		player := e.Event.PlayerID()
		if player == "" {
			player = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			e.Timestamp.UTC().Format(timeLayout), e.Event.Type, player, e.Attempts, firstLine(e.LastError))
	}
	return w.Flush()
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeDefects(out io.Writer, defects []domain.Defect) error {
	if len(defects) == 0 {
		return nil
	}
	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEFECT\tRECORD\tFIELD\tDETAIL")
	for _, d := range defects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.Kind, orDash(d.RecordID), orDash(d.Field), d.Detail)
	}
	return w.Flush()
}

func formatExpiry(t *time.Time) string {
	if t == nil {
		return punishment.LabelPermanent
	}
	return t.UTC().Format(timeLayout)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
