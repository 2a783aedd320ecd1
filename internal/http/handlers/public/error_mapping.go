package public

import (
	"errors"

	"github.com/tweetboard/internal/constants"
	handlershared "github.com/tweetboard/internal/http/handlers/shared"
	"github.com/tweetboard/internal/http/response"
	"github.com/tweetboard/internal/service"

	"github.com/gin-gonic/gin"
)

const storageFailureMessage = "tweet storage failure"

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	name   string
}

func respondError(c *gin.Context, code int, name, msg string, err error) {
	handlershared.RespondError(c, code, name, msg, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackName string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.name, rule.target.Error(), nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackName, storageFailureMessage, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var tweetPublishErrorRules = []mappedHandlerError{
	{target: service.ErrPublisherEmpty, code: response.CodeBadRequest, name: constants.ErrorNameEmptyPublisher},
	{target: service.ErrTweetTextEmpty, code: response.CodeBadRequest, name: constants.ErrorNameEmptyText},
	{target: service.ErrTweetTooLong, code: response.CodeBadRequest, name: constants.ErrorNameTooLong},
}

var tweetDiscardErrorRules = []mappedHandlerError{
	{target: service.ErrTweetNotFound, code: response.CodeBadRequest, name: constants.ErrorNameNotFound},
	{target: service.ErrTweetAlreadyDiscarded, code: response.CodeBadRequest, name: constants.ErrorNameAlreadyDiscarded},
}

var tweetGetErrorRules = []mappedHandlerError{
	{target: service.ErrTweetNotFound, code: response.CodeNotFound, name: constants.ErrorNameNotFound},
}

func respondTweetPublishError(c *gin.Context, err error) {
	respondWithMappedError(c, err, tweetPublishErrorRules, response.CodeInternal, constants.ErrorNameStorageFailure)
}

func respondTweetDiscardError(c *gin.Context, err error) {
	respondWithMappedError(c, err, tweetDiscardErrorRules, response.CodeInternal, constants.ErrorNameStorageFailure)
}

func respondTweetGetError(c *gin.Context, err error) {
	respondWithMappedError(c, err, tweetGetErrorRules, response.CodeInternal, constants.ErrorNameStorageFailure)
}

// respondTweetError 兜底映射，列表接口只可能出现存储错误
func respondTweetError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(tweetPublishErrorRules, tweetDiscardErrorRules), response.CodeInternal, constants.ErrorNameStorageFailure)
}

func respondInvalidRequest(c *gin.Context, msg string) {
	respondError(c, response.CodeBadRequest, constants.ErrorNameInvalidRequest, msg, nil)
}
