package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

// ==================== UUID ====================

// GenerateUserUUID returns the public account id: "b" for buyers, "s" for sellers.
func GenerateUserUUID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ==================== CODES ====================

// GenerateOTP returns a numeric code of the given length from crypto/rand.
func GenerateOTP(length int) string {
	if length <= 0 {
		length = 6
	}

	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}

	return sb.String()
}

// ==================== SNOWFLAKE IDS ====================

var (
	idNode     *snowflake.Node
	idNodeOnce sync.Once
	idNodeErr  error
)

// InitIDNode sets the snowflake node for this process. Call it once at startup.
func InitIDNode(node int64) error {
	idNodeOnce.Do(func() {
		idNode, idNodeErr = snowflake.NewNode(node)
	})
	return idNodeErr
}

func nextID() string {
	if err := InitIDNode(1); err != nil {
		panic(fmt.Sprintf("snowflake node: %v", err))
	}
	return idNode.Generate().Base36()
}

func GenerateListingID() string {
	return "LID" + strings.ToUpper(nextID())
}

func GenerateOrderID() string {
	return "oi_" + nextID()
}

func GenerateTrackingID() string {
	return "tri_" + nextID()
}

func GenerateOrderPaymentID() string {
	return "opi_" + nextID()
}
