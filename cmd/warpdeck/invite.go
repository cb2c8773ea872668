package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/warpdeck/internal/app"
	"github.com/five82/warpdeck/internal/signwarp"
)

var inviteCmd = &cobra.Command{
	Use:   "invite <warp> <player>",
	Short: "Invite a player to a private warp",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeInvite(cmd, args, (*app.Session).Invite)
	},
}

var uninviteCmd = &cobra.Command{
	Use:   "uninvite <warp> <player>",
	Short: "Remove a player from a private warp",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeInvite(cmd, args, (*app.Session).Uninvite)
	},
}

func init() {
	rootCmd.AddCommand(inviteCmd, uninviteCmd)
}

func changeInvite(cmd *cobra.Command, args []string, apply func(*app.Session, context.Context, string, string) (signwarp.InviteResult, error)) error {
	session, err := app.Open(cmd.Context(), options())
	if err != nil {
		return err
	}
	defer session.Close()

	result, err := apply(session, cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	message := result.Message
	if message == "" {
		message = "done"
	}
	fmt.Fprintln(cmd.OutOrStdout(), message)
	return nil
}
