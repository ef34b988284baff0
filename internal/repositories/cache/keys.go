package cache

import "fmt"

func generationKey(userID uint) string {
	return fmt.Sprintf("generation:user:%d", userID)
}

func balanceKey(userID uint, generation int64) string {
	return fmt.Sprintf("balance:user:%d:g%d", userID, generation)
}

func withdrawalPageKey(userID uint, generation int64, page, pageSize int) string {
	return fmt.Sprintf("withdrawals:user:%d:g%d:%d:%d", userID, generation, page, pageSize)
}
