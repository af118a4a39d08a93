// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Engine
		"executing %q":              "%q を実行中",
		"stage %d (%s) failed: %v":  "ステージ %d (%s) が失敗しました: %v",
		"output redirected to %s":   "出力を %s にリダイレクトしました",
		"redirect to %s failed: %v": "%s へのリダイレクトに失敗しました: %v",

		// Session and startup
		"loaded config from %s":         "%s から設定を読み込みました",
		"running startup script %s":     "起動スクリプト %s を実行中",
		"startup script failed: %v":     "起動スクリプトが失敗しました: %v",
		"audit log unavailable: %v":     "監査ログを利用できません: %v",
		"audit write failed: %v":        "監査ログの書き込みに失敗しました: %v",
		"history unavailable: %v":       "履歴を利用できません: %v",
		"serving MCP on stdio":          "stdio で MCP を提供中",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",

		// User-facing diagnostics
		"Unknown command: %s":                             "不明なコマンド: %s",
		"No file specified for cat command.":              "cat コマンドにファイルが指定されていません。",
		"No input provided for sort command.":             "sort コマンドに入力がありません。",
		"Already at the root directory.":                  "すでにルートディレクトリにいます。",
		"This directory doesn't exist. Please try again.": "このディレクトリは存在しません。もう一度お試しください。",
	})
}
