/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/pdga-ratingest/pdga"
)

type RatingSubCommand string

const (
	RatingAboutCmd    RatingSubCommand = "about"
	RatingHelpCmd     RatingSubCommand = "help"
	RatingEstimateCmd RatingSubCommand = "estimate"
	RatingCalendarCmd RatingSubCommand = "calendar"
)

// estimateTimeout bounds the background scrape behind a deferred reply;
// discord invalidates interaction tokens after 15 minutes.
const estimateTimeout = 5 * time.Minute

func broadcastOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
}

func ratingCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        string(RatingCmd),
		Description: "PDGA rating estimates; try /rating help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RatingHelpCmd),
				Description: "Show usage for rating",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RatingAboutCmd),
				Description: "Show information about pdga-ratingest",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RatingEstimateCmd),
				Description: "Estimate a player's rating at the next update",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "pdga",
						Description: "PDGA number of the player",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "add",
						Description: "Ratings for rounds not yet on pdga.com, e.g. 950,960",
						Required:    false,
					},
					broadcastOption(),
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(RatingCalendarCmd),
				Description: "Show the next ratings update and eligibility cutoff",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOption()},
			},
		},
	}
}

func (b *bot) ratingCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := b.ratingHelpCmdHandler
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := b.ratingSubHdlrs[RatingSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(ctx, inter)
}

func ephemeralResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// subOptions returns the options of the invoked subcommand by name.
func subOptions(inter *discordgo.Interaction) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return out
	}
	for _, opt := range data.Options[0].Options {
		out[opt.Name] = opt
	}
	return out
}

//go:embed about.txt
var aboutText string

func (b *bot) ratingAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResponse()
	resp.Data.Content = truncateContent(aboutText)
	return resp
}

//go:embed help.md
var helpText string

func (b *bot) ratingHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

func (b *bot) ratingCalendarCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResponse()
	if opt, ok := subOptions(inter)["broadcast"]; ok && opt.BoolValue() {
		resp.Data.Flags = 0
	}

	resp.Data.Content = fmt.Sprintf("```\n%s```",
		truncateContent(pdga.BuildCalendarOutput(time.Now())))
	return resp
}

// ratingEstimateCmdHandler replies with a deferred message right away and
// edits it once the estimate is ready, since collecting rounds regularly
// takes longer than discord's 3 second response window.
func (b *bot) ratingEstimateCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := ephemeralResponse()
	opts := subOptions(inter)

	numOpt, ok := opts["pdga"]
	if !ok || numOpt.IntValue() <= 0 {
		resp.Data.Content = "Please provide a valid PDGA number."
		b.log.Infof("discordbot.estimate: %v", resp.Data.Content)
		return resp
	}
	num := pdga.PdgaNum(numOpt.IntValue())

	var manual []int
	if addOpt, ok := opts["add"]; ok {
		var err error
		manual, err = pdga.ParseManualRatings(addOpt.StringValue())
		if err != nil {
			resp.Data.Content = fmt.Sprintf("Invalid ratings in add: %v", err)
			b.log.Infof("discordbot.estimate: %v", resp.Data.Content)
			return resp
		}
	}
	if opt, ok := opts["broadcast"]; ok && opt.BoolValue() {
		resp.Data.Flags = 0
	}

	resp.Type = discordgo.InteractionResponseDeferredChannelMessageWithSource
	go b.completeEstimate(inter, num, manual)

	return resp
}

func (b *bot) completeEstimate(inter *discordgo.Interaction, num pdga.PdgaNum,
	manual []int) {

	ctx, cancel := context.WithTimeout(b.ctx, estimateTimeout)
	defer cancel()

	content := b.estimateContent(ctx, num, manual)
	_, err := b.session.InteractionResponseEdit(inter, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		b.log.Errorf("discordbot.estimate: failed to send result for %v: %v",
			num, err)
	}
}

func (b *bot) estimateContent(ctx context.Context, num pdga.PdgaNum,
	manual []int) string {

	rep, err := b.svc.Estimate(ctx, num, manual)
	if err != nil {
		b.log.Warnf("discordbot.estimate: %v", err)
		if errors.Is(err, pdga.ErrEmptyInput) {
			return fmt.Sprintf("PDGA #%v has no rounds that count toward the next update.",
				num)
		}
		var sue *pdga.SourceUnavailableError
		if errors.As(err, &sue) {
			return fmt.Sprintf("pdga.com is unavailable right now; please try again later (%v)",
				sue)
		}
		return fmt.Sprintf("Error estimating rating for %v: %v", num, err)
	}

	// Wrap output in code block for monospace formatting in Discord
	return fmt.Sprintf("```\n%s```", truncateContent(rep.Summary()))
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
