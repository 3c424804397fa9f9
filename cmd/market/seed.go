package main

import (
	"context"
	"fmt"

	"unimarket/internal/domain"
	"unimarket/internal/service"

	"go.uber.org/zap"
)

// runSeed loads a demo account with two listings and a short comment
// thread, so a fresh checkout has something to browse. It refuses to touch
// a store that already has users, and it leaves the session logged out.
func (a *app) runSeed(ctx context.Context) error {
	if _, err := a.users.Login(ctx, "demo@uni.example"); err == nil {
		a.logger.Info("Store already seeded, nothing to do")
		return a.users.Logout(ctx)
	}

	demo, err := a.users.Register(ctx, "demo@uni.example", "UniDemoUser")
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	avatar := "https://picsum.photos/id/64/200/200"
	instagram := &domain.SocialLinks{Instagram: "uni_official"}
	if _, err := a.users.UpdateProfile(ctx, service.ProfileUpdate{
		AvatarURL:   &avatar,
		SocialLinks: instagram,
	}); err != nil {
		return fmt.Errorf("failed to fill demo profile: %w", err)
	}

	camera, err := a.products.Create(ctx, service.ProductInput{
		Title:       "Fujifilm X100V digital camera",
		Description: "Barely used, no scratches, everything works. Original leather case included.",
		Price:       42000,
		Category:    "Electronics",
		Images: []string{
			"https://picsum.photos/id/250/800/600",
			"https://picsum.photos/id/96/800/600",
		},
		Condition: domain.ConditionLikeNew,
		PriceNote: "Analysis: excellent state of preservation, priced against the current second-hand market.",
		Tags:      []string{"camera", "fuji", "street"},
	})
	if err != nil {
		return fmt.Errorf("failed to create demo listing: %w", err)
	}

	if _, err := a.products.Create(ctx, service.ProductInput{
		Title:       "Levi's denim jacket",
		Description: "Worn a few times, light signs of use, distinctive style.",
		Price:       1500,
		Category:    "Clothing",
		Images:      []string{"https://picsum.photos/id/338/800/600"},
		Condition:   domain.ConditionGood,
		PriceNote:   "Analysis: fabric in good shape, all buttons intact.",
		Tags:        []string{"denim", "jacket", "vintage"},
	}); err != nil {
		return fmt.Errorf("failed to create demo listing: %w", err)
	}

	if _, err := a.comments.Add(ctx, camera.ID, "Roughly how many shutter actuations?"); err != nil {
		return fmt.Errorf("failed to create demo comment: %w", err)
	}
	if _, err := a.comments.Add(ctx, camera.ID, "About 2000 or so!"); err != nil {
		return fmt.Errorf("failed to create demo comment: %w", err)
	}

	if err := a.users.Logout(ctx); err != nil {
		return err
	}

	a.logger.Info("Demo data seeded",
		zap.String("demo_user", demo.ID.String()),
	)
	return nil
}
