// Package bot is the Telegram adapter. It parses incoming chat messages,
// calls the trip and report services, and renders their results as replies.
// No fare or ledger rules live here.
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"angkot/internal/domain"
	"angkot/internal/services"
	"angkot/internal/tripparse"
	"angkot/internal/utils"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	trips    *services.TripService
	reports  services.ReportService
	registry services.RegistryService
	sessions *services.SessionStore
}

func New(token string, trips *services.TripService, reports services.ReportService, registry services.RegistryService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("inisialisasi bot telegram: %w", err)
	}
	return &Bot{
		api:      api,
		trips:    trips,
		reports:  reports,
		registry: registry,
		sessions: services.NewSessionStore(),
	}, nil
}

// Run long-polls Telegram until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	utils.LogEvent("", "bot", "start", "bot telegram berjalan sebagai @"+b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			utils.LogEvent("", "bot", "stop", "bot telegram berhenti")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.dispatch(ctx, update.Message)
		}
	}
}

// dispatch handles one message. A panic in any handler is converted into a
// generic failure reply so the poll loop never dies.
func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	defer func() {
		if r := recover(); r != nil {
			utils.LogEvent("", "bot", "dispatch_panic", fmt.Sprintf("chat_id=%d panic=%v", chatID, r))
			b.reply(chatID, "Maaf, terjadi kesalahan. Coba lagi.")
		}
	}()

	b.reply(chatID, b.handle(ctx, chatID, msg.Text))
}

func (b *Bot) handle(ctx context.Context, chatID int64, text string) string {
	switch strings.TrimSpace(text) {
	case "/ping":
		return "pong"
	case "/start", "/help":
		return helpText
	case "/driver":
		b.sessions.Set(chatID, services.StateAwaitingDriverName)
		return "Siapa nama driver yang mau didaftarkan?"
	case "/drivers":
		return b.driverList(ctx, chatID)
	case "/penumpang":
		b.sessions.Set(chatID, services.StateAwaitingPassengerName)
		return "Siapa nama penumpang yang mau didaftarkan?"
	case "/daftarpenumpang":
		return b.passengerList(ctx, chatID)
	case "/antar":
		return formatHelp("antar")
	case "/jemput":
		return formatHelp("jemput")
	case "/catat":
		b.sessions.Set(chatID, services.StateAwaitingNote)
		return noteFormatHelp
	}

	if strings.HasPrefix(strings.TrimSpace(text), "/laporan") {
		return b.report(ctx, chatID, text)
	}
	if strings.HasPrefix(strings.TrimSpace(text), "/hapus") {
		return b.deleteLeg(ctx, chatID, text)
	}

	lower := strings.ToLower(strings.TrimSpace(text))
	if strings.HasPrefix(lower, "antar\n") || strings.HasPrefix(lower, "jemput\n") {
		b.sessions.Clear(chatID)
		return b.recordTrip(ctx, chatID, text)
	}

	switch b.sessions.Consume(chatID) {
	case services.StateAwaitingDriverName:
		if err := b.registry.AddDriver(ctx, text, chatID); err != nil {
			return renderError(err)
		}
		return "✅ Driver " + strings.TrimSpace(text) + " berhasil ditambahkan"
	case services.StateAwaitingPassengerName:
		if err := b.registry.AddPassenger(ctx, text, chatID); err != nil {
			return renderError(err)
		}
		return "✅ Penumpang " + strings.TrimSpace(text) + " berhasil ditambahkan"
	case services.StateAwaitingNote:
		return b.recordNote(ctx, chatID, text)
	}

	return "Perintah tidak dikenali. Ketik /help untuk daftar perintah."
}

// recordTrip routes "antar\n..." and "jemput\n..." submissions. The first
// line selects the leg, the rest is the trip body.
func (b *Bot) recordTrip(ctx context.Context, chatID int64, text string) string {
	text = strings.TrimSpace(text)
	keyword, body, _ := strings.Cut(text, "\n")

	trip, err := tripparse.ParseTrip(body)
	if err != nil {
		return renderError(err)
	}

	var out services.LegOutcome
	if strings.EqualFold(strings.TrimSpace(keyword), "antar") {
		out, err = b.trips.RecordDeparture(ctx, chatID, trip)
	} else {
		out, err = b.trips.RecordReturn(ctx, chatID, trip)
	}
	if err != nil {
		return renderError(err)
	}
	return renderLegOutcome(out)
}

func (b *Bot) recordNote(ctx context.Context, chatID int64, text string) string {
	note, err := tripparse.ParseNote(text)
	if err != nil {
		return renderError(err)
	}
	out, err := b.trips.RecordNote(ctx, chatID, note)
	if err != nil {
		return renderError(err)
	}
	return renderNoteOutcome(out)
}

// deleteLeg handles "/hapus antar|jemput <nama driver> [DD-MM-YYYY]".
// An optional trailing date selects a past day; default is today.
func (b *Bot) deleteLeg(ctx context.Context, chatID int64, text string) string {
	fields := strings.Fields(text)
	if len(fields) < 3 {
		return "Format tidak valid. Gunakan: /hapus antar|jemput <nama_driver> [DD-MM-YYYY]"
	}

	var leg domain.LegType
	switch strings.ToLower(fields[1]) {
	case "antar":
		leg = domain.LegDeparture
	case "jemput":
		leg = domain.LegReturn
	default:
		return "Tipe perjalanan tidak valid. Gunakan 'antar' atau 'jemput'."
	}

	day := utils.Today()
	nameFields := fields[2:]
	if len(nameFields) > 1 {
		if parsed, err := utils.ParseReportDay(nameFields[len(nameFields)-1]); err == nil {
			day = parsed
			nameFields = nameFields[:len(nameFields)-1]
		}
	}
	driver := strings.Join(nameFields, " ")

	if err := b.trips.DeleteLeg(ctx, chatID, driver, leg, day); err != nil {
		return renderError(err)
	}
	return fmt.Sprintf("✅ Catatan %s driver %s untuk tanggal %s telah dihapus.",
		strings.ToLower(fields[1]), driver, utils.FormatReportDay(day))
}

// report handles "/laporan" and "/laporan DD-MM-YYYY".
func (b *Bot) report(ctx context.Context, chatID int64, text string) string {
	day := utils.Today()
	fields := strings.Fields(text)
	if len(fields) > 1 {
		parsed, err := utils.ParseReportDay(fields[1])
		if err != nil {
			return "Format tanggal tidak valid. Gunakan /laporan DD-MM-YYYY."
		}
		day = parsed
	}

	report, err := b.reports.DailyReport(ctx, chatID, day)
	if err != nil {
		return renderError(err)
	}
	return report.Render()
}

func (b *Bot) driverList(ctx context.Context, chatID int64) string {
	drivers, err := b.registry.DriverList(ctx, chatID)
	if err != nil {
		return renderError(err)
	}
	if len(drivers) == 0 {
		return "Belum ada driver terdaftar. Tambahkan dengan /driver."
	}
	var sb strings.Builder
	sb.WriteString("🚗 Daftar Driver:\n")
	for i, d := range drivers {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, d)
	}
	return sb.String()
}

func (b *Bot) passengerList(ctx context.Context, chatID int64) string {
	passengers, err := b.registry.PassengerList(ctx, chatID)
	if err != nil {
		return renderError(err)
	}
	if len(passengers) == 0 {
		return "Belum ada penumpang terdaftar. Tambahkan dengan /penumpang."
	}
	var sb strings.Builder
	sb.WriteString("🧑 Daftar Penumpang:\n")
	for i, p := range passengers {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, p)
	}
	return sb.String()
}

func (b *Bot) reply(chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		utils.LogEvent("", "bot", "send_error", err.Error())
	}
}

// renderError turns a service error into reply text. Validation messages go
// to the user as written; anything else becomes a generic apology.
func renderError(err error) string {
	if domain.IsValidation(err) || domain.IsNotFound(err) {
		return err.Error()
	}
	return "Maaf, terjadi kesalahan. Coba lagi."
}

const helpText = "Selamat datang! Berikut adalah daftar perintah yang tersedia:\n" +
	"/ping - Cek koneksi bot\n" +
	"/driver - Tambah driver baru\n" +
	"/drivers - Lihat daftar driver\n" +
	"/penumpang - Tambah penumpang baru\n" +
	"/daftarpenumpang - Lihat daftar penumpang\n" +
	"/antar - Lihat format pencatatan antar\n" +
	"/jemput - Lihat format pencatatan jemput\n" +
	"/catat - Catat satu hari penuh dalam satu pesan\n" +
	"/hapus antar|jemput <nama_driver> - Hapus catatan perjalanan\n" +
	"/laporan - Lihat laporan harian\n" +
	"/laporan DD-MM-YYYY - Lihat laporan tanggal tertentu"

func formatHelp(keyword string) string {
	return "Format pencatatan " + keyword + ":\n\n" +
		keyword + "\n" +
		"Driver: [nama_driver]\n" +
		"- [nama_penumpang_1]\n" +
		"- [nama_penumpang_2]\n" +
		"- [nama_penumpang_3]\n\n" +
		"Contoh:\n" +
		keyword + "\n" +
		"Driver: Pak Ahmad\n" +
		"- Santri Ali\n" +
		"- Santri Umar\n" +
		"- Santri Hasan"
}

const noteFormatHelp = "Kirim catatan harian dengan format:\n\n" +
	"Driver: [nama_driver]\n" +
	"antar & jemput\n" +
	"1. [nama_penumpang]\n" +
	"antar aja\n" +
	"1. [nama_penumpang]\n" +
	"jemput aja\n" +
	"1. [nama_penumpang]\n\n" +
	"Bagian yang kosong boleh dihilangkan."
