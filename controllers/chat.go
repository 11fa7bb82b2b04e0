package controllers

import (
	"net/http"

	"NeuroScanAI/config/authorization"
	"NeuroScanAI/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	chats *services.ChatService
}

func NewChatController(chats *services.ChatService) *ChatController {
	return &ChatController{chats: chats}
}

// Chat registers the chat routes; every one of them needs an identity.
func Chat(r *gin.Engine, ctl *ChatController, gate gin.HandlerFunc) {
	chat := r.Group("chat", gate)
	{
		chat.POST("/send", ctl.SendMessage)
		chat.GET("/:doctorId/:patientId", ctl.FetchMessages)
	}
}

/*
* Bind JSON
* Sender comes from the identity, never from the body
 */
func (ctl *ChatController) SendMessage(c *gin.Context) {
	identity, _ := authorization.GetIdentity(c)
	var in services.SendMessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abort(c, services.InvalidInput(err, &in))
		return
	}
	msg, err := ctl.chats.SendMessage(c.Request.Context(), identity, in)
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Message sent successfully", "data": msg})
}

func (ctl *ChatController) FetchMessages(c *gin.Context) {
	identity, _ := authorization.GetIdentity(c)
	msgs, err := ctl.chats.FetchMessages(c.Request.Context(), identity, c.Param("doctorId"), c.Param("patientId"))
	if err != nil {
		abort(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetched messages successfully", "data": msgs})
}
