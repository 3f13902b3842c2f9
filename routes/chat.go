package routes

import (
	"errors"
	"html/template"
	"net/http"

	"opioid-chatbot/models"
	"opioid-chatbot/services"
	"opioid-chatbot/web"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// defaultMultipartMemory matches gin's MaxMultipartMemory default.
const defaultMultipartMemory = 32 << 20

const IntroMessage = "Welcome to the AI Opioid Education Chatbot! Here you will learn all about opioids!"

// SetupChatRoutes registers the chat page, its assets and the ask endpoint.
func SetupChatRoutes(router *gin.Engine, answers *services.AnswerService) {
	router.SetHTMLTemplate(template.Must(web.Templates()))
	router.StaticFS("/static", http.FS(web.Static()))

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"intro_message": IntroMessage,
		})
	})

	// Every outcome, upstream failures included, is a 200 with an answer.
	router.POST("/ask", func(c *gin.Context) {
		question, tooLarge := readQuestion(c)
		if tooLarge {
			c.JSON(http.StatusOK, models.AskResponse{Answer: services.TooLongQuestionAnswer})
			return
		}

		answer := answers.Ask(c.Request.Context(), question)
		c.JSON(http.StatusOK, models.AskResponse{Answer: answer})
	})
}

// readQuestion takes the question from the form, or from the JSON body when
// the request is JSON. Unreadable input yields "". tooLarge reports a body
// cut off by the request size limit.
func readQuestion(c *gin.Context) (question string, tooLarge bool) {
	var maxErr *http.MaxBytesError

	if c.ContentType() == binding.MIMEJSON {
		var req models.AskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return "", errors.As(err, &maxErr)
		}
		return req.Question, false
	}

	if err := c.Request.ParseMultipartForm(defaultMultipartMemory); err != nil && errors.As(err, &maxErr) {
		return "", true
	}
	return c.PostForm("question"), false
}
