package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/plexroulette/plex"
)

// signinCmd represents the signin command
var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in to plex.tv and print the token",
	Long: `Sign in to plex.tv with plex.login and plex.password and print the token.
Store the token as plex.token (or PLEXROULETTE_PLEX_TOKEN) to skip signing in.`,
	Args: cobra.NoArgs,
	RunE: runSignin,
}

// accountCmd represents the account command
var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show the signed-in plex.tv account",
	Args:  cobra.NoArgs,
	RunE:  runAccount,
}

// friendsCmd represents the friends command
var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "List the users your servers are shared with",
	Args:  cobra.NoArgs,
	RunE:  runFriends,
}

// serversCmd represents the servers command
var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List the servers registered to the account",
	Args:  cobra.NoArgs,
	RunE:  runServers,
}

func init() {
	rootCmd.AddCommand(signinCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(friendsCmd)
	rootCmd.AddCommand(serversCmd)
}

func runSignin(cmd *cobra.Command, args []string) error {
	token, err := signIn(cmd.Context(), plexClient, cfg.Plex)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runAccount(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	token, err := authToken(ctx)
	if err != nil {
		return err
	}

	account, err := plexClient.GetAccount(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatAccount(account))
	return nil
}

func runFriends(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	token, err := authToken(ctx)
	if err != nil {
		return err
	}

	friends, err := plexClient.GetFriends(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatFriends(friends))
	return nil
}

func runServers(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	token, err := authToken(ctx)
	if err != nil {
		return err
	}

	servers, err := plexClient.GetServers(ctx, token)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), formatServers(servers))
	return nil
}

func formatAccount(account *plex.Account) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\n", account.User.GetDisplayName())
	if account.User.Username != "" {
		fmt.Fprintf(&sb, "├── Username: %s\n", account.User.Username)
	}
	if account.User.Email != "" {
		fmt.Fprintf(&sb, "├── Email: %s\n", account.User.Email)
	}
	fmt.Fprintf(&sb, "╰── ID: %d\n\n", account.User.ID)
	return sb.String()
}

func formatFriends(list *plex.FriendList) string {
	if len(list.Users) == 0 {
		return "No friends found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nFriends (%d):\n\n", len(list.Users))

	for i, friend := range list.Users {
		isLast := i == len(list.Users)-1
		prefix, indent := "├", "│   "
		if isLast {
			prefix, indent = "╰", "    "
		}

		name := friend.Title
		if name == "" {
			name = friend.Username
		}
		fmt.Fprintf(&sb, "%s── %s", prefix, name)
		if friend.Home {
			sb.WriteString(" [home]")
		}
		sb.WriteString("\n")

		for _, server := range friend.Servers {
			libraries := fmt.Sprintf("%d libraries", server.NumLibraries)
			if server.AllLibraries {
				libraries = "all libraries"
			}
			fmt.Fprintf(&sb, "%s%s: %s", indent, server.Name, libraries)
			if server.Pending {
				sb.WriteString(" (pending)")
			}
			sb.WriteString("\n")
		}

		if !isLast {
			sb.WriteString("│\n")
		}
	}

	sb.WriteString("\n")
	return sb.String()
}

func formatServers(list *plex.ServerList) string {
	if len(list.Servers) == 0 {
		return "No servers found\n"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\nServers (%d):\n\n", len(list.Servers))

	for i, server := range list.Servers {
		prefix := "├"
		if i == len(list.Servers)-1 {
			prefix = "╰"
		}
		owner := "shared"
		if server.Owned {
			owner = "owned"
		}
		fmt.Fprintf(&sb, "%s── %s %s (v%s, %s)\n", prefix, server.Name, server.URL(), server.Version, owner)
	}

	sb.WriteString("\n")
	return sb.String()
}
