package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var (
	_ repository.PolicyRepository         = (*PolicyRepo)(nil)
	_ repository.ChecklistRepository      = (*ChecklistRepo)(nil)
	_ repository.IncidentRepository       = (*IncidentRepo)(nil)
	_ repository.TrainingRepository       = (*TrainingRepo)(nil)
	_ repository.ScheduleRepository       = (*ScheduleRepo)(nil)
	_ repository.MysteryShopperRepository = (*MysteryRepo)(nil)
)

type PolicyRepo struct{ s *Store }

func clonePolicy(p *entity.PolicySettings) *entity.PolicySettings {
	if p == nil {
		return nil
	}
	c := *p
	c.ReminderScheduleMinutes = cloneInts(p.ReminderScheduleMinutes)
	return &c
}

func (r *PolicyRepo) Get(_ context.Context, companyID string) (*entity.PolicySettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, _ := r.s.policies.get(companyID)
	return clonePolicy(p), nil
}

func (r *PolicyRepo) Upsert(_ context.Context, p *entity.PolicySettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.policies.put(p.CompanyID, clonePolicy(p))
	return nil
}

type ChecklistRepo struct{ s *Store }

func cloneChecklist(t *entity.ChecklistTemplate) *entity.ChecklistTemplate {
	c := *t
	c.Items = cloneStrings(t.Items)
	return &c
}

func (r *ChecklistRepo) Create(_ context.Context, t *entity.ChecklistTemplate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.checklists.put(t.ID, cloneChecklist(t))
	return nil
}

func (r *ChecklistRepo) ListByCompany(_ context.Context, companyID, checklistType string) ([]*entity.ChecklistTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.ChecklistTemplate
	for _, t := range r.s.checklists.filter(func(t *entity.ChecklistTemplate) bool {
		return t.CompanyID == companyID && (checklistType == "" || t.Type == checklistType)
	}) {
		out = append(out, cloneChecklist(t))
	}
	return out, nil
}

type IncidentRepo struct{ s *Store }

func cloneIncident(i *entity.Incident) *entity.Incident {
	if i == nil {
		return nil
	}
	c := *i
	c.ShiftID = clonePtr(i.ShiftID)
	c.ResolvedAt = clonePtr(i.ResolvedAt)
	return &c
}

func (r *IncidentRepo) Create(_ context.Context, i *entity.Incident) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.incidents.put(i.ID, cloneIncident(i))
	return nil
}

func (r *IncidentRepo) GetByID(_ context.Context, id string) (*entity.Incident, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i, _ := r.s.incidents.get(id)
	return cloneIncident(i), nil
}

func (r *IncidentRepo) Update(_ context.Context, i *entity.Incident) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.incidents.put(i.ID, cloneIncident(i))
	return nil
}

// ListByCompany más recientes primero.
func (r *IncidentRepo) ListByCompany(_ context.Context, companyID, status string) ([]*entity.Incident, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.incidents.filter(func(i *entity.Incident) bool {
		return i.CompanyID == companyID && (status == "" || i.Status == status)
	})
	sort.SliceStable(all, func(a, b int) bool { return all[a].CreatedAt.After(all[b].CreatedAt) })
	var out []*entity.Incident
	for _, i := range all {
		out = append(out, cloneIncident(i))
	}
	return out, nil
}

type TrainingRepo struct{ s *Store }

func cloneLesson(l *entity.TrainingLesson) *entity.TrainingLesson {
	c := *l
	c.MediaLinks = cloneStrings(l.MediaLinks)
	c.Tags = cloneStrings(l.Tags)
	return &c
}

func (r *TrainingRepo) CreateSection(_ context.Context, sec *entity.TrainingSection) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.sections.put(sec.ID, clonePtr(sec))
	return nil
}

func (r *TrainingRepo) GetSection(_ context.Context, id string) (*entity.TrainingSection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sec, _ := r.s.sections.get(id)
	return clonePtr(sec), nil
}

// ListSections ordenadas por Order.
func (r *TrainingRepo) ListSections(_ context.Context, companyID string) ([]*entity.TrainingSection, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.sections.filter(func(sec *entity.TrainingSection) bool { return sec.CompanyID == companyID })
	sort.SliceStable(all, func(i, j int) bool { return all[i].Order < all[j].Order })
	var out []*entity.TrainingSection
	for _, sec := range all {
		out = append(out, clonePtr(sec))
	}
	return out, nil
}

func (r *TrainingRepo) CreateLesson(_ context.Context, l *entity.TrainingLesson) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.lessons.put(l.ID, cloneLesson(l))
	return nil
}

func (r *TrainingRepo) ListLessons(_ context.Context, companyID, sectionID string) ([]*entity.TrainingLesson, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.TrainingLesson
	for _, l := range r.s.lessons.filter(func(l *entity.TrainingLesson) bool {
		return l.CompanyID == companyID && (sectionID == "" || l.SectionID == sectionID)
	}) {
		out = append(out, cloneLesson(l))
	}
	return out, nil
}

type ScheduleRepo struct{ s *Store }

func (r *ScheduleRepo) Create(_ context.Context, e *entity.ScheduleEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.schedule.put(e.ID, clonePtr(e))
	return nil
}

// ListByCompany ordenadas por start_at.
func (r *ScheduleRepo) ListByCompany(_ context.Context, companyID string, from, to time.Time) ([]*entity.ScheduleEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.schedule.filter(func(e *entity.ScheduleEntry) bool {
		if e.CompanyID != companyID {
			return false
		}
		if !from.IsZero() && e.StartAt.Before(from) {
			return false
		}
		return to.IsZero() || e.StartAt.Before(to)
	})
	sort.SliceStable(all, func(i, j int) bool { return all[i].StartAt.Before(all[j].StartAt) })
	var out []*entity.ScheduleEntry
	for _, e := range all {
		out = append(out, clonePtr(e))
	}
	return out, nil
}

type MysteryRepo struct{ s *Store }

func cloneMystery(m *entity.MysteryShopperReport) *entity.MysteryShopperReport {
	c := *m
	c.UserID = clonePtr(m.UserID)
	c.ShiftID = clonePtr(m.ShiftID)
	c.Answers = make(map[string]any, len(m.Answers))
	for k, v := range m.Answers {
		c.Answers[k] = v
	}
	return &c
}

func (r *MysteryRepo) Create(_ context.Context, m *entity.MysteryShopperReport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.mystery.put(m.ID, cloneMystery(m))
	return nil
}

func (r *MysteryRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.MysteryShopperReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.MysteryShopperReport
	for _, m := range r.s.mystery.filter(func(m *entity.MysteryShopperReport) bool { return m.CompanyID == companyID }) {
		out = append(out, cloneMystery(m))
	}
	return out, nil
}
