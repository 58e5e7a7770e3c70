package http

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"quiz-bot-service/internal/domain"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Ledger is the read-only slice of the user ledger the dashboard needs.
type Ledger interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	TopN(ctx context.Context, n int) ([]domain.User, error)
}

// Bank is the question bank surface the dashboard reads and writes.
type Bank interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	AddQuestion(ctx context.Context, q domain.Question) error
}

// Dashboard serves the admin pages: ledger listing, question bank
// browsing and question authoring.
type Dashboard struct {
	ledger Ledger
	bank   Bank
	log    *slog.Logger
}

func NewDashboard(ledger Ledger, bank Bank, log *slog.Logger) *Dashboard {
	return &Dashboard{ledger: ledger, bank: bank, log: log}
}

// Router builds the gin engine with all dashboard routes mounted.
func (d *Dashboard) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/", d.listUsers)
	router.GET("/questions", d.listQuestions)
	router.GET("/add-question", d.addQuestionForm)
	router.POST("/add-question", d.addQuestion)
	router.GET("/ws", NewLeaderboardFeed(d.ledger, d.log).Serve)
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func (d *Dashboard) listUsers(c *gin.Context) {
	users, err := d.ledger.ListUsers(c.Request.Context())
	if err != nil {
		d.log.Error("list users", "err", err)
		c.String(http.StatusInternalServerError, "failed to load users")
		return
	}
	c.HTML(http.StatusOK, "users.html", gin.H{"Users": users})
}

func (d *Dashboard) listQuestions(c *gin.Context) {
	questions, err := d.bank.ListQuestions(c.Request.Context())
	if err != nil {
		d.log.Error("list questions", "err", err)
		c.String(http.StatusInternalServerError, "failed to load questions")
		return
	}
	c.HTML(http.StatusOK, "questions.html", gin.H{"Questions": questions})
}

func (d *Dashboard) addQuestionForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_question.html", gin.H{})
}

func (d *Dashboard) addQuestion(c *gin.Context) {
	q := domain.Question{
		Text: c.PostForm("question"),
		Options: [domain.OptionCount]string{
			c.PostForm("option1"),
			c.PostForm("option2"),
			c.PostForm("option3"),
			c.PostForm("option4"),
		},
	}

	correct, err := strconv.Atoi(c.PostForm("correct_option"))
	if err != nil {
		c.HTML(http.StatusBadRequest, "add_question.html", gin.H{"Error": "correct option must be a number from 1 to 4"})
		return
	}
	q.CorrectOption = correct

	if err := q.Validate(); err != nil {
		c.HTML(http.StatusBadRequest, "add_question.html", gin.H{"Error": err.Error()})
		return
	}

	if err := d.bank.AddQuestion(c.Request.Context(), q); err != nil {
		d.log.Error("add question", "err", err)
		c.String(http.StatusInternalServerError, "failed to save question")
		return
	}
	c.Redirect(http.StatusSeeOther, "/questions")
}
