package repository

import (
	"context"
	"sort"

	"quiz-api/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func subjectFilter(subject string) bson.M {
	if subject == "" {
		return bson.M{}
	}
	return bson.M{"subject": subject}
}

func (r *QuestionRepository) FindByID(ctx context.Context, id string) (*models.Question, error) {
	var question models.Question
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// FindAll returns every question, optionally restricted to one subject.
func (r *QuestionRepository) FindAll(ctx context.Context, subject string) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, subjectFilter(subject))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// DistinctSubjects returns the sorted set of non-empty subject labels.
func (r *QuestionRepository) DistinctSubjects(ctx context.Context) ([]string, error) {
	values, err := r.Col.Distinct(ctx, "subject", bson.M{"subject": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}

	subjects := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			subjects = append(subjects, s)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}

// Count returns the number of questions matching the optional subject filter.
// CountDocuments runs as an aggregation server-side; if it fails we fall back
// to walking an _id-only cursor and counting by hand.
func (r *QuestionRepository) Count(ctx context.Context, subject string) (int64, error) {
	filter := subjectFilter(subject)

	count, err := r.Col.CountDocuments(ctx, filter)
	if err == nil {
		return count, nil
	}

	cur, curErr := r.Col.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if curErr != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	var manual int64
	for cur.Next(ctx) {
		manual++
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}
	return manual, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	if question.ID == "" {
		question.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Col.InsertOne(ctx, question)
	return err
}

func (r *QuestionRepository) Update(ctx context.Context, id string, update bson.M) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
