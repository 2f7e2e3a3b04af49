package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/anitha-dev/gigconnect-api/models"
	"gorm.io/gorm"
)

// skillCategories maps each skill a worker can list to the job categories
// it qualifies them for.
var skillCategories = map[string][]string{
	"Stitching & Tailoring":   {"Tailoring", "Handicrafts"},
	"Handicrafts":             {"Handicrafts", "Creative Work"},
	"Tutoring & Education":    {"Education", "Office Work"},
	"Beauty Services":         {"Beauty & Wellness"},
	"Elderly Care":            {"Caregiving"},
	"Data Entry":              {"Office Work", "Digital Services"},
	"Content Writing":         {"Creative Work", "Digital Services", "Office Work"},
	"Graphic Design":          {"Creative Work", "Digital Services"},
	"Social Media Management": {"Digital Services", "Creative Work"},
}

// SkillMatchScore scores how well a worker's skills fit a job category.
// An exact category hit scores 100, a case-insensitive substring relation
// with a mapped category scores 70, anything else 0; the best skill wins.
func SkillMatchScore(skills []string, category string) int {
	if len(skills) == 0 || category == "" {
		return 0
	}

	best := 0
	for _, skill := range skills {
		mapped, ok := skillCategories[skill]
		if !ok {
			continue
		}
		for _, cat := range mapped {
			if cat == category {
				best = max(best, 100)
			} else if containsFold(category, cat) || containsFold(cat, category) {
				best = max(best, 70)
			}
		}
	}
	return best
}

// LocationMatch reports whether a worker's location is compatible with a
// job's. Empty locations do not filter; otherwise it is a case-insensitive
// equality or substring check (e.g. "Hyderabad" vs "Hyderabad, Telangana").
func LocationMatch(userLocation, jobLocation string) bool {
	if userLocation == "" || jobLocation == "" {
		return true
	}
	u := strings.ToLower(strings.TrimSpace(userLocation))
	j := strings.ToLower(strings.TrimSpace(jobLocation))
	return u == j || strings.Contains(u, j) || strings.Contains(j, u)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ScoredJob is a job with its match score attached for the caller
type ScoredJob struct {
	models.Job
	MatchScore int `json:"matchScore"`
}

// Recommender ranks open jobs for a worker
type Recommender struct {
	db *gorm.DB
}

// NewRecommender creates a recommender service
func NewRecommender(db *gorm.DB) *Recommender {
	return &Recommender{db: db}
}

// Recommend returns open and on-hold jobs ranked for the user. Jobs the
// user created are skipped; a job is included when its skill score reaches
// the floor (or the user has listed no skills yet) and the locations are
// compatible. Ties keep fetch order.
func (s *Recommender) Recommend(userID string) ([]ScoredJob, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	var jobs []models.Job
	if err := s.db.
		Where("status IN ?", []string{models.JobStatusOpen, models.JobStatusOnHold}).
		Order("created_at ASC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}

	skills := []string(user.Skills)
	const scoreFloor = 30

	recommended := []ScoredJob{}
	for _, job := range jobs {
		if job.CreatorID == userID {
			continue
		}
		score := SkillMatchScore(skills, job.Category)
		if score < scoreFloor && len(skills) > 0 {
			continue
		}
		if !LocationMatch(user.Address, job.Location) {
			continue
		}
		recommended = append(recommended, ScoredJob{Job: job, MatchScore: score})
	}

	sort.SliceStable(recommended, func(i, j int) bool {
		return recommended[i].MatchScore > recommended[j].MatchScore
	})
	return recommended, nil
}
