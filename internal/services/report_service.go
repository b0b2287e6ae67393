package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"labo-backend/internal/models"
	"labo-backend/internal/repositories"
	"labo-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// WeekReportData holds everything rendered into one weekly planning PDF.
type WeekReportData struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Days      []DayPlan
}

// DayPlan is one calendar day of the weekly report.
type DayPlan struct {
	Date     time.Time
	Sessions []SessionLine
}

// SessionLine is one slot row of the report: the slot plus its event's fields
// flattened for rendering.
type SessionLine struct {
	Start      time.Time
	End        time.Time
	Title      string
	Type       string
	State      string
	Discipline string
	Creator    string
	Room       string
}

// ReportService renders the weekly planning PDF handed out to lab staff.
type ReportService struct {
	EventRepo *repositories.EventRepository
	SlotRepo  *repositories.TimeSlotRepository
	RoomRepo  *repositories.RoomRepository
}

func NewReportService(eventRepo *repositories.EventRepository, slotRepo *repositories.TimeSlotRepository, roomRepo *repositories.RoomRepository) *ReportService {
	return &ReportService{EventRepo: eventRepo, SlotRepo: slotRepo, RoomRepo: roomRepo}
}

// GetWeekData collects the active sessions of the week containing anchor,
// Monday through Sunday in Paris time, grouped by day.
func (s *ReportService) GetWeekData(ctx context.Context, anchor time.Time) (*WeekReportData, error) {
	weekStart := timeutil.StartOfWeek(anchor)
	weekEnd := weekStart.AddDate(0, 0, 7)

	slots, err := s.SlotRepo.ListActiveBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	rooms := map[int]string{}
	if list, err := s.RoomRepo.List(ctx); err == nil {
		for _, r := range list {
			rooms[r.ID] = r.Name
		}
	}

	events := map[int]*models.Event{}
	data := &WeekReportData{WeekStart: weekStart, WeekEnd: weekEnd}
	for d := 0; d < 7; d++ {
		data.Days = append(data.Days, DayPlan{Date: weekStart.AddDate(0, 0, d)})
	}

	for _, slot := range slots {
		ev, ok := events[slot.EventID]
		if !ok {
			ev, err = s.EventRepo.Get(ctx, slot.EventID)
			if err != nil {
				continue
			}
			events[slot.EventID] = ev
		}
		if ev.State == models.StateCancelled {
			continue
		}

		line := SessionLine{
			Start:      timeutil.ToLocal(slot.StartDate),
			End:        timeutil.ToLocal(slot.EndDate),
			Title:      ev.Title,
			Type:       ev.Type,
			State:      ev.State,
			Discipline: ev.Discipline,
			Creator:    ev.CreatorName,
		}
		if ev.RoomID != nil {
			line.Room = rooms[*ev.RoomID]
		}

		day := int(line.Start.Sub(weekStart).Hours() / 24)
		if day >= 0 && day < 7 {
			data.Days[day].Sessions = append(data.Days[day].Sessions, line)
		}
	}
	return data, nil
}

// GenerateWeekPDF renders the weekly planning as a landscape A4 PDF.
func (s *ReportService) GenerateWeekPDF(data *WeekReportData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(277, 10, "Planning du laboratoire", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Semaine du %s au %s - genere le %s",
		data.WeekStart.Format("02/01/2006"),
		data.WeekEnd.AddDate(0, 0, -1).Format("02/01/2006"),
		timeutil.Now().Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	for _, day := range data.Days {
		if len(day.Sessions) == 0 {
			continue
		}

		// Day banner
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(277, 8, frenchDay(day.Date), "1", 1, "L", true, 0, "")

		// Table header
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(200, 200, 200)
		pdf.CellFormat(30, 7, "Horaire", "1", 0, "C", true, 0, "")
		pdf.CellFormat(92, 7, "Seance", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Type", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Etat", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Discipline", "1", 0, "C", true, 0, "")
		pdf.CellFormat(35, 7, "Salle", "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 7, "Enseignant", "1", 1, "C", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, line := range day.Sessions {
			horaire := fmt.Sprintf("%s - %s", line.Start.Format("15:04"), line.End.Format("15:04"))
			title := line.Title
			if len(title) > 48 {
				title = title[:45] + "..."
			}
			creator := line.Creator
			if len(creator) > 16 {
				creator = creator[:13] + "..."
			}
			pdf.CellFormat(30, 6, horaire, "1", 0, "C", false, 0, "")
			pdf.CellFormat(92, 6, title, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, line.Type, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, line.State, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, line.Discipline, "1", 0, "C", false, 0, "")
			pdf.CellFormat(35, 6, line.Room, "1", 0, "C", false, 0, "")
			pdf.CellFormat(30, 6, creator, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render weekly PDF: %w", err)
	}
	return buf.Bytes(), nil
}

var frenchDays = [...]string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}

func frenchDay(t time.Time) string {
	return fmt.Sprintf("%s %s", frenchDays[int(t.Weekday())], t.Format("02/01/2006"))
}
