package notify_test

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxsonaraujo/pdc-api/internal/domain/entity"
	"github.com/maxsonaraujo/pdc-api/internal/infrastructure/notify"
	"github.com/maxsonaraujo/pdc-api/pkg/logger"
)

func TestLogDispatcher_UnaLineaPorNotificacion(t *testing.T) {
	var buf bytes.Buffer
	d := notify.NewLogDispatcher(logger.NewWithWriter(&buf, "info"))

	d.Dispatch(context.Background(), []*entity.Notification{
		{ID: "n1", CompanyID: "c1", UserID: "u-admin", Title: "Nuevo pedido PKP-20261014-000001"},
		{ID: "n2", CompanyID: "c1", UserID: "u-mgr", Title: "Nuevo pedido PKP-20261014-000001"},
	})

	var users []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var line map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &line))
		assert.Equal(t, "Nuevo pedido PKP-20261014-000001", line["title"])
		users = append(users, line["user_id"].(string))
	}
	assert.Equal(t, []string{"u-admin", "u-mgr"}, users)
}
