package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/paisasplit/internal/models"
	"github.com/mmynk/paisasplit/internal/service"
)

func newCreateGroupCmd(get func() *app, opts *options) *cobra.Command {
	var kind, icon, description string
	cmd := &cobra.Command{
		Use:   "create-group NAME [EMAIL]...",
		Short: "Create a group and add members by email",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			group, err := service.NewGroupService(a.deps).CreateGroup(cmd.Context(), service.GroupDraft{
				Name:         args[0],
				Icon:         icon,
				Type:         models.GroupType(kind),
				Description:  description,
				MemberEmails: args[1:],
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s %s (%s) with %d members.\n", group.Icon, group.Name, group.Type.Label(), group.MemberCount())
			if opts.write {
				return a.persist(cmd.Context())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", string(models.GroupGeneral), "general, home, trip, couple, work or event")
	cmd.Flags().StringVar(&icon, "icon", "", "group icon (default: the type's icon)")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	return cmd
}

func newInviteCmd(get func() *app, opts *options) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "invite EMAIL...",
		Short: "Invite friends by email",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			friends, err := service.NewFriendService(a.deps).Invite(cmd.Context(), args, message)
			if err != nil {
				return err
			}
			for _, f := range friends {
				fmt.Fprintf(cmd.OutOrStdout(), "Invited %s\n", f.Email)
			}
			if opts.write {
				return a.persist(cmd.Context())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "personal message")
	return cmd
}
