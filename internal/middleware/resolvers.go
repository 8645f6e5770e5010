package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ResolvePathID resolves the target user id from a numeric path param.
func ResolvePathID(param string) TargetResolver {
	return func(c *gin.Context) (int64, error) {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || id <= 0 {
			return 0, ErrTargetNotFound
		}
		return id, nil
	}
}

// ResolveBodyUserID resolves the target user id from the request body's
// userId field. The body is restored so the handler can bind it again.
func ResolveBodyUserID() TargetResolver {
	return func(c *gin.Context) (int64, error) {
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		var peek struct {
			UserID int64 `json:"userId"`
		}
		if err := json.Unmarshal(bodyBytes, &peek); err != nil || peek.UserID <= 0 {
			return 0, ErrTargetNotFound
		}
		return peek.UserID, nil
	}
}

// ResolveEmailOwner resolves the target user id by looking the email path
// param up in the store. An unknown email is ErrTargetNotFound.
func ResolveEmailOwner(lookup func(ctx context.Context, email string) (int64, error)) TargetResolver {
	return func(c *gin.Context) (int64, error) {
		return lookup(c.Request.Context(), c.Param("email"))
	}
}

// ResolveOrderOwner resolves the target user id as the owner of the order in
// the id path param. An unknown order is ErrTargetNotFound.
func ResolveOrderOwner(lookup func(ctx context.Context, orderID int64) (int64, error)) TargetResolver {
	return func(c *gin.Context) (int64, error) {
		orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || orderID <= 0 {
			return 0, ErrTargetNotFound
		}
		return lookup(c.Request.Context(), orderID)
	}
}
