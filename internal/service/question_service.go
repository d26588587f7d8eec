package service

import (
	"context"
	"math/rand"

	"quiz-api/internal/models"
	"quiz-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type QuestionService struct {
	Repo *repository.QuestionRepository
}

func NewQuestionService(repo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Repo: repo}
}

func (s *QuestionService) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	return s.Repo.FindByID(ctx, id)
}

// RandomQuestions returns up to count questions drawn without replacement,
// optionally restricted to one subject. When fewer questions match than were
// asked for, all of them are returned.
func (s *QuestionService) RandomQuestions(ctx context.Context, count int, subject string) ([]models.Question, error) {
	questions, err := s.Repo.FindAll(ctx, subject)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return []models.Question{}, nil
	}
	return sampleQuestions(questions, count), nil
}

func (s *QuestionService) ListSubjects(ctx context.Context) ([]string, error) {
	return s.Repo.DistinctSubjects(ctx)
}

func (s *QuestionService) CountQuestions(ctx context.Context, subject string) (int64, error) {
	return s.Repo.Count(ctx, subject)
}

func (s *QuestionService) CreateQuestion(ctx context.Context, question *models.Question) error {
	if err := question.Validate(); err != nil {
		return err
	}
	return s.Repo.Create(ctx, question)
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id string, update map[string]any) error {
	return s.Repo.Update(ctx, id, bson.M(update))
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// sampleQuestions picks min(count, len) questions without replacement. The
// input slice is left untouched.
func sampleQuestions(questions []models.Question, count int) []models.Question {
	if count > len(questions) {
		count = len(questions)
	}
	if count < 0 {
		count = 0
	}

	shuffled := make([]models.Question, len(questions))
	copy(shuffled, questions)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:count]
}
