// noladash is an interactive terminal dashboard over the Nola aggregation
// service: pick a metric, a grouping dimension, and filters; get a bar chart
// and table with a zoomable top-10 window and CSV export.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"noladash/internal/api"
	"noladash/internal/dashboard/domain"
	"noladash/internal/dashboard/service"
	"noladash/internal/platform/config"
	"noladash/internal/platform/logger"
	"noladash/internal/render"
	"noladash/internal/risk"

	"github.com/joho/godotenv"
)

const chartWidth = 48

func main() {
	_ = godotenv.Load()

	l := logger.Get()
	root := config.New()

	client := api.New(api.FromConfig(root))
	downloadDir := root.Prefix("NOLA_").MayString("DOWNLOAD_DIR", "downloads")
	exporter := service.NewExporter(client, service.DirSink{Dir: downloadDir})
	panel := risk.NewPanel(client)

	sess := service.NewSession(client, service.WithOnChange(printSnapshot))

	ctx := context.Background()
	if err := sess.LoadOptions(ctx); err != nil {
		// error view already printed by the onChange callback; a filter
		// change cannot recover this, so bail out with a hint
		l.Error().Err(err).Msg("options load failed; is the backend running?")
		os.Exit(1)
	}

	app := &app{sess: sess, exporter: exporter, panel: panel}
	app.loop(ctx)
}

type app struct {
	sess     *service.Session
	exporter *service.Exporter
	panel    *risk.Panel
}

func (a *app) loop(ctx context.Context) {
	fmt.Println(`digite "help" para ver os comandos`)
	sc := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for sc.Scan() {
		if !a.dispatch(ctx, strings.Fields(strings.TrimSpace(sc.Text()))) {
			return
		}
		fmt.Print("> ")
	}
}

// dispatch runs one command; returns false to quit
func (a *app) dispatch(ctx context.Context, args []string) bool {
	if len(args) == 0 {
		return true
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "quit", "exit", "q":
		return false
	case "help":
		printHelp()
	case "show":
		printSnapshot(a.sess.Snapshot())
	case "filters":
		printFilters(a.sess.Snapshot())
	case "metric":
		if len(rest) == 1 {
			if err := a.sess.SetMetric(ctx, domain.Metric(rest[0])); err != nil {
				fmt.Println(err)
			}
		} else {
			printIdents("métricas", metricIdents())
		}
	case "dim":
		if len(rest) == 1 {
			if err := a.sess.SetDimension(ctx, domain.Dimension(rest[0])); err != nil {
				fmt.Println(err)
			}
		} else {
			printIdents("dimensões", dimensionIdents())
		}
	case "store":
		a.sess.SetStore(ctx, optionalID(rest))
	case "channel":
		a.sess.SetChannel(ctx, optionalID(rest))
	case "day":
		a.sess.SetWeekday(ctx, optionalID(rest))
	case "from", "to":
		a.setDate(ctx, cmd, rest)
	case "clear":
		a.sess.ClearFilters(ctx)
	case "zoom":
		a.sess.ToggleZoom()
	case "range":
		a.setRange(rest)
	case "export":
		a.export(ctx)
	case "risk":
		a.showRisk(ctx)
	default:
		fmt.Printf("comando desconhecido: %q (tente \"help\")\n", cmd)
	}
	return true
}

func (a *app) setDate(ctx context.Context, which string, rest []string) {
	f := a.sess.Filters()
	var d *time.Time
	if len(rest) == 1 && rest[0] != "-" {
		t, err := time.Parse(domain.DateLayout, rest[0])
		if err != nil {
			fmt.Printf("data inválida %q (use %s)\n", rest[0], domain.DateLayout)
			return
		}
		d = &t
	}
	if which == "from" {
		a.sess.SetDateRange(ctx, d, f.DateTo)
	} else {
		a.sess.SetDateRange(ctx, f.DateFrom, d)
	}
}

func (a *app) setRange(rest []string) {
	if len(rest) != 2 {
		fmt.Println("uso: range <início> <fim>")
		return
	}
	start, err1 := strconv.Atoi(rest[0])
	end, err2 := strconv.Atoi(rest[1])
	if err1 != nil || err2 != nil {
		fmt.Println("uso: range <início> <fim>")
		return
	}
	a.sess.SetWindow(start, end)
}

func (a *app) export(ctx context.Context) {
	if a.exporter.Busy() {
		fmt.Println("A exportar...")
		return
	}
	name, err := a.exporter.Export(ctx, a.sess.Filters())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("exportado: %s\n", name)
}

func (a *app) showRisk(ctx context.Context) {
	fmt.Println("Carregando clientes em risco...")
	if err := a.panel.Load(ctx); err != nil {
		fmt.Println(err)
		return
	}
	customers, _, _ := a.panel.Snapshot()
	fmt.Println("Clientes em Risco (3+ compras, sem voltar há 30+ dias)")
	for _, c := range customers {
		ltv := "N/D"
		if c.LifetimeValue.Valid() {
			ltv = fmt.Sprintf("%.2f", c.LifetimeValue.Float())
		}
		fmt.Printf("  %-26s %-32s %-18s compras=%-3d dias=%-4d R$ %s\n",
			c.CustomerName, c.Email, c.PhoneNumber,
			c.TotalPurchases, c.DaysSinceLastPurchase, ltv)
	}
}

func printSnapshot(snap service.Snapshot) {
	switch snap.Phase {
	case service.PhaseLoading:
		fmt.Println("Carregando dados...")
	case service.PhaseError:
		fmt.Printf("ERRO: %v\n", snap.Err)
	default:
		zoom := "zoom ligado (foco no top 10)"
		if !snap.Window.Active() {
			zoom = "gráfico completo"
		}
		fmt.Printf("\n%s — %s | %s | %d linhas\n\n",
			snap.Filters.Metric.Label(), snap.Filters.Dimension.Label(), zoom, len(snap.Rows))
		fmt.Print(render.Chart(snap.Rows, snap.Window, snap.Filters.Metric, snap.Filters.Dimension, chartWidth))
		fmt.Println()
		fmt.Print(render.Table(snap.Rows, snap.Window, snap.Filters.Metric, snap.Filters.Dimension))
	}
}

func printFilters(snap service.Snapshot) {
	f := snap.Filters
	fmt.Printf("metric=%s dim=%s store=%s channel=%s day=%s from=%s to=%s\n",
		f.Metric, f.Dimension,
		orAll(f.StoreID), orAll(f.ChannelID), orAll(f.Weekday),
		orDate(f.DateFrom), orDate(f.DateTo))
	if !f.WeekdayFilterVisible() && f.Weekday != "" {
		fmt.Println("(filtro de dia ignorado enquanto agrupado por dia da semana)")
	}
	for _, o := range snap.Options.Stores {
		fmt.Printf("  loja %d: %s\n", o.ID, o.Name)
	}
	for _, o := range snap.Options.Channels {
		fmt.Printf("  canal %d: %s\n", o.ID, o.Name)
	}
	for _, o := range snap.Options.Weekdays {
		fmt.Printf("  dia %d: %s\n", o.ID, o.Name)
	}
}

func printHelp() {
	fmt.Print(`comandos:
  metric <id>      escolhe a métrica (sem argumento: lista)
  dim <id>         escolhe a dimensão de agrupamento (sem argumento: lista)
  store <id|->     filtra por loja (- limpa)
  channel <id|->   filtra por canal (- limpa)
  day <id|->       filtra por dia da semana (- limpa)
  from <data|->    data inicial YYYY-MM-DD (- limpa)
  to <data|->      data final YYYY-MM-DD (- limpa)
  clear            limpa todos os filtros opcionais
  zoom             liga/desliga o zoom (top 10)
  range <a> <b>    arrasta a janela visível (zoom ligado)
  export           exporta o CSV com os filtros atuais
  risk             lista clientes em risco
  filters          mostra filtros e opções
  show             redesenha o painel
  quit             sai
`)
}

func metricIdents() []string {
	out := make([]string, 0, len(domain.Metrics()))
	for _, m := range domain.Metrics() {
		out = append(out, fmt.Sprintf("%s (%s)", m, m.Label()))
	}
	return out
}

func dimensionIdents() []string {
	out := make([]string, 0, len(domain.Dimensions()))
	for _, d := range domain.Dimensions() {
		out = append(out, fmt.Sprintf("%s (%s)", d, d.Label()))
	}
	return out
}

func printIdents(what string, idents []string) {
	fmt.Printf("%s:\n", what)
	for _, id := range idents {
		fmt.Printf("  %s\n", id)
	}
}

func optionalID(rest []string) string {
	if len(rest) == 0 || rest[0] == "-" {
		return ""
	}
	return rest[0]
}

func orAll(s string) string {
	if s == "" {
		return "*"
	}
	return s
}

func orDate(t *time.Time) string {
	if t == nil {
		return "*"
	}
	return t.Format(domain.DateLayout)
}
